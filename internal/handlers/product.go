package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/stockroom/auth"
	"github.com/diewo77/stockroom/internal/models"
	"github.com/diewo77/stockroom/validation"
)

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{db: db} }

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	h.db.Preload("Category").Order("id").Find(&products)
	renderTemplate(w, r, "products/list.html", map[string]any{"Products": products})
}

func (h *ProductHandler) categories() []models.Category {
	var categories []models.Category
	h.db.Order("name").Find(&categories)
	return categories
}

// parseProductForm validates the submitted fields into product, recording
// violations for the re-rendered form.
func parseProductForm(r *http.Request, product *models.Product) validation.Violations {
	v := validation.Violations{}
	product.Name = strings.TrimSpace(r.FormValue("name"))
	validation.Required("name", product.Name, v)
	product.CategoryID = validation.Reference("category", r.FormValue("category"), v)
	product.Price = validation.NonNegativeDecimal("price", r.FormValue("price"), v)
	product.Quantity = validation.Int("quantity", r.FormValue("quantity"), v)
	return v
}

func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "products/form.html", map[string]any{
			"Title": "Add Product", "Product": models.Product{}, "Categories": h.categories(),
		})
		return
	}
	var product models.Product
	if v := parseProductForm(r, &product); !v.Empty() {
		renderTemplate(w, r, "products/form.html", map[string]any{
			"Title": "Add Product", "Errors": v, "Product": product, "Categories": h.categories(),
		})
		return
	}
	// Stamp the creating identity as owner.
	if uid, ok := auth.UserIDFromContext(r.Context()); ok {
		product.CreatedByID = uid
	}
	if err := h.db.Create(&product).Error; err != nil {
		renderTemplate(w, r, "products/form.html", map[string]any{
			"Title": "Add Product", "Error": "could not save product", "Product": product, "Categories": h.categories(),
		})
		return
	}
	http.Redirect(w, r, "/products/", http.StatusSeeOther)
}

func (h *ProductHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := h.db.First(&product, r.PathValue("id")).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "products/form.html", map[string]any{
			"Title": "Edit Product", "Product": product, "Categories": h.categories(),
		})
		return
	}
	if v := parseProductForm(r, &product); !v.Empty() {
		renderTemplate(w, r, "products/form.html", map[string]any{
			"Title": "Edit Product", "Errors": v, "Product": product, "Categories": h.categories(),
		})
		return
	}
	if err := h.db.Save(&product).Error; err != nil {
		renderTemplate(w, r, "products/form.html", map[string]any{
			"Title": "Edit Product", "Error": "could not save product", "Product": product, "Categories": h.categories(),
		})
		return
	}
	http.Redirect(w, r, "/products/", http.StatusSeeOther)
}

// Delete shows a confirmation page on GET and deletes on POST. Sales of the
// product go with it via the declared cascade.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := h.db.First(&product, r.PathValue("id")).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "products/confirm_delete.html", map[string]any{"Product": product})
		return
	}
	if err := h.db.Delete(&product).Error; err != nil {
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/products/", http.StatusSeeOther)
}
