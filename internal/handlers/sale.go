package handlers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/stockroom/internal/models"
	"github.com/diewo77/stockroom/validation"
)

type SaleHandler struct {
	db *gorm.DB
}

func NewSaleHandler(db *gorm.DB) *SaleHandler { return &SaleHandler{db: db} }

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	var sales []models.Sale
	h.db.Preload("Product").Order("id").Find(&sales)
	renderTemplate(w, r, "sales/list.html", map[string]any{"Sales": sales})
}

func (h *SaleHandler) products() []models.Product {
	var products []models.Product
	h.db.Order("name").Find(&products)
	return products
}

func parseSaleForm(r *http.Request, sale *models.Sale) validation.Violations {
	v := validation.Violations{}
	sale.ProductID = validation.Reference("product", r.FormValue("product"), v)
	sale.QuantitySold = validation.PositiveInt("quantity_sold", r.FormValue("quantity_sold"), v)
	return v
}

// Add records a sale and decrements the product's stock by the sold quantity.
// The decrement is unchecked, so stock can go below zero.
func (h *SaleHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "sales/form.html", map[string]any{
			"Title": "Record Sale", "Sale": models.Sale{}, "Products": h.products(),
		})
		return
	}
	var sale models.Sale
	v := parseSaleForm(r, &sale)
	var product models.Product
	if v.Empty() {
		if err := h.db.First(&product, sale.ProductID).Error; err != nil {
			v["product"] = "unknown_product"
		}
	}
	if !v.Empty() {
		renderTemplate(w, r, "sales/form.html", map[string]any{
			"Title": "Record Sale", "Errors": v, "Sale": sale, "Products": h.products(),
		})
		return
	}
	sale.SaleDate = time.Now()
	if err := h.db.Create(&sale).Error; err != nil {
		renderTemplate(w, r, "sales/form.html", map[string]any{
			"Title": "Record Sale", "Error": "could not save sale", "Sale": sale, "Products": h.products(),
		})
		return
	}
	product.Quantity -= sale.QuantitySold
	h.db.Save(&product)
	http.Redirect(w, r, "/sales/", http.StatusSeeOther)
}

// Edit changes the product or quantity of a sale. Stock is not readjusted.
func (h *SaleHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var sale models.Sale
	if err := h.db.First(&sale, r.PathValue("id")).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "sales/form.html", map[string]any{
			"Title": "Edit Sale", "Sale": sale, "Products": h.products(),
		})
		return
	}
	v := parseSaleForm(r, &sale)
	if v.Empty() {
		if err := h.db.First(&models.Product{}, sale.ProductID).Error; err != nil {
			v["product"] = "unknown_product"
		}
	}
	if !v.Empty() {
		renderTemplate(w, r, "sales/form.html", map[string]any{
			"Title": "Edit Sale", "Errors": v, "Sale": sale, "Products": h.products(),
		})
		return
	}
	if err := h.db.Save(&sale).Error; err != nil {
		renderTemplate(w, r, "sales/form.html", map[string]any{
			"Title": "Edit Sale", "Error": "could not save sale", "Sale": sale, "Products": h.products(),
		})
		return
	}
	http.Redirect(w, r, "/sales/", http.StatusSeeOther)
}

// Delete shows a confirmation page on GET and deletes on POST. Stock is not
// restored.
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var sale models.Sale
	if err := h.db.Preload("Product").First(&sale, r.PathValue("id")).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "sales/confirm_delete.html", map[string]any{"Sale": sale})
		return
	}
	if err := h.db.Delete(&sale).Error; err != nil {
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/sales/", http.StatusSeeOther)
}
