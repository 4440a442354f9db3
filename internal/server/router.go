package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/stockroom/auth"
	"github.com/diewo77/stockroom/httpx"
	"github.com/diewo77/stockroom/internal/handlers"
	"github.com/diewo77/stockroom/internal/middleware"
	"github.com/diewo77/stockroom/internal/models"
	"github.com/diewo77/stockroom/internal/policy"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, logger *zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth double-checks the session against the users table.
	auth.SetUserVerifier(func(ctx context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	guard := policy.NewGuard(policy.NewCachedRoleResolver(policy.NewDBRoleResolver(db), 5*time.Minute))
	staffOrAdmin := []string{models.RoleStaff, models.RoleAdmin}

	// authed wraps a handler with authentication and, when roles are given,
	// the role guard.
	authed := func(h http.HandlerFunc, roles ...string) http.Handler {
		var handler http.Handler = h
		if len(roles) > 0 {
			handler = guard.RequireRole(handler, roles...)
		}
		return auth.RequireAuth(handler)
	}

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	ah := handlers.NewAuthHandler(db)
	mux.HandleFunc("/register/{$}", ah.Register)
	mux.HandleFunc("/login", ah.Login)
	mux.HandleFunc("/logout", ah.Logout)

	dh := handlers.NewDashboardHandler(db)
	mux.Handle("GET /{$}", authed(dh.Show))

	ch := handlers.NewCategoryHandler(db)
	mux.Handle("GET /categories/{$}", authed(ch.List, staffOrAdmin...))
	mux.Handle("/categories/add/{$}", authed(ch.Add, staffOrAdmin...))
	mux.Handle("/categories/edit/{id}/{$}", authed(ch.Edit, staffOrAdmin...))
	// The delete URL puts the id before the verb, so as a mux pattern it would
	// conflict with the edit pattern. Match it by hand from the subtree root;
	// the more specific patterns above take precedence.
	deleteCategory := authed(ch.Delete, models.RoleAdmin)
	mux.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/categories/")
		id, ok := strings.CutSuffix(rest, "/delete/")
		if !ok || id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}
		r.SetPathValue("id", id)
		deleteCategory.ServeHTTP(w, r)
	})

	ph := handlers.NewProductHandler(db)
	mux.Handle("GET /products/{$}", authed(ph.List, staffOrAdmin...))
	mux.Handle("/products/add/{$}", authed(ph.Add, staffOrAdmin...))
	mux.Handle("/products/edit/{id}/{$}", authed(ph.Edit, staffOrAdmin...))
	mux.Handle("/products/delete/{id}/{$}", authed(ph.Delete, models.RoleAdmin))

	sh := handlers.NewSaleHandler(db)
	mux.Handle("GET /sales/{$}", authed(sh.List, staffOrAdmin...))
	mux.Handle("/sales/add/{$}", authed(sh.Add, staffOrAdmin...))
	mux.Handle("/sales/edit/{id}/{$}", authed(sh.Edit, staffOrAdmin...))
	mux.Handle("/sales/delete/{id}/{$}", authed(sh.Delete, models.RoleAdmin))

	return middleware.RequestLog(logger)(middleware.Recover(logger)(auth.Middleware(mux)))
}
