package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/stockroom/internal/models"
	"github.com/diewo77/stockroom/validation"
)

type CategoryHandler struct {
	db *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler { return &CategoryHandler{db: db} }

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	h.db.Order("id").Find(&categories)
	renderTemplate(w, r, "categories/list.html", map[string]any{"Categories": categories})
}

func (h *CategoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "categories/form.html", map[string]any{"Title": "Add Category"})
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	v := validation.Violations{}
	validation.Required("name", name, v)
	if !v.Empty() {
		renderTemplate(w, r, "categories/form.html", map[string]any{"Title": "Add Category", "Errors": v, "Name": name})
		return
	}
	if err := h.db.Create(&models.Category{Name: name}).Error; err != nil {
		renderTemplate(w, r, "categories/form.html", map[string]any{"Title": "Add Category", "Error": "could not save category", "Name": name})
		return
	}
	http.Redirect(w, r, "/categories/", http.StatusSeeOther)
}

func (h *CategoryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := h.db.First(&category, r.PathValue("id")).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "categories/form.html", map[string]any{"Title": "Edit Category", "Name": category.Name, "Category": category})
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	v := validation.Violations{}
	validation.Required("name", name, v)
	if !v.Empty() {
		renderTemplate(w, r, "categories/form.html", map[string]any{"Title": "Edit Category", "Errors": v, "Name": name, "Category": category})
		return
	}
	category.Name = name
	if err := h.db.Save(&category).Error; err != nil {
		renderTemplate(w, r, "categories/form.html", map[string]any{"Title": "Edit Category", "Error": "could not save category", "Name": name, "Category": category})
		return
	}
	http.Redirect(w, r, "/categories/", http.StatusSeeOther)
}

// Delete shows a confirmation page on GET and deletes on POST. Products in
// the category (and their sales) go with it via the declared cascade.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := h.db.First(&category, r.PathValue("id")).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "categories/confirm_delete.html", map[string]any{"Category": category})
		return
	}
	if err := h.db.Delete(&category).Error; err != nil {
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/categories/", http.StatusSeeOther)
}
