package handlers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/stockroom/internal/services"
)

type DashboardHandler struct {
	reporter *services.Reporter
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{reporter: services.NewReporter(db)}
}

func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reporter.Summary(r.Context(), time.Now())
	if err != nil {
		http.Error(w, "could not compute dashboard", http.StatusInternalServerError)
		return
	}
	renderTemplate(w, r, "dashboard.html", map[string]any{
		"TotalProducts":   summary.TotalProducts,
		"TotalCategories": summary.TotalCategories,
		"TotalUnitsSold":  summary.TotalUnitsSold,
		"TotalRevenue":    summary.TotalRevenue.StringFixed(2),
		"TodayRevenue":    summary.TodayRevenue.StringFixed(2),
		"WeeklyRevenue":   summary.WeeklyRevenue.StringFixed(2),
		"MonthlyRevenue":  summary.MonthlyRevenue.StringFixed(2),
		"MonthlyReport":   summary.MonthlyReport,
		"Categories":      summary.Categories,
	})
}
