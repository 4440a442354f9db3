package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/diewo77/stockroom/internal/models"
)

func TestProductAddStampsCreator(t *testing.T) {
	dbi := setupTestDB(t)
	h := NewProductHandler(dbi)
	cat := createCategory(t, dbi, "Electronics")
	user := createUser(t, dbi, "alice", models.RoleStaff)

	values := url.Values{
		"name":     {"TV"},
		"category": {strconv.Itoa(int(cat.ID))},
		"price":    {"499.99"},
		"quantity": {"10"},
	}
	rr := httptest.NewRecorder()
	h.Add(rr, formRequest("/products/add/", values, user.ID, ""))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d body=%s", rr.Code, rr.Body.String())
	}

	var p models.Product
	if err := dbi.First(&p).Error; err != nil {
		t.Fatalf("product not persisted: %v", err)
	}
	if p.CreatedByID != user.ID {
		t.Fatalf("creator not stamped: got %d want %d", p.CreatedByID, user.ID)
	}
	if p.Price.StringFixed(2) != "499.99" || p.Quantity != 10 {
		t.Fatalf("fields not persisted: price=%s qty=%d", p.Price, p.Quantity)
	}
}

func TestProductAddRejectsNegativePrice(t *testing.T) {
	dbi := setupTestDB(t)
	h := NewProductHandler(dbi)
	cat := createCategory(t, dbi, "Electronics")

	values := url.Values{
		"name":     {"TV"},
		"category": {strconv.Itoa(int(cat.ID))},
		"price":    {"-1"},
		"quantity": {"10"},
	}
	rr := httptest.NewRecorder()
	h.Add(rr, formRequest("/products/add/", values, 0, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected re-rendered form, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "must_not_be_negative") {
		t.Fatalf("expected price violation in body: %s", rr.Body.String())
	}
	var count int64
	dbi.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid product persisted")
	}
}

func TestProductListShowsCategoryAndPrice(t *testing.T) {
	dbi := setupTestDB(t)
	h := NewProductHandler(dbi)
	cat := createCategory(t, dbi, "Electronics")
	createProduct(t, dbi, "Radio", "25.50", 3, cat.ID)

	rr := httptest.NewRecorder()
	h.List(rr, getRequest("/products/", ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Radio", "Electronics", "25.50"} {
		if !strings.Contains(body, want) {
			t.Fatalf("list missing %q: %s", want, body)
		}
	}
}

func TestProductEdit(t *testing.T) {
	dbi := setupTestDB(t)
	h := NewProductHandler(dbi)
	cat := createCategory(t, dbi, "Electronics")
	p := createProduct(t, dbi, "Radio", "25.50", 3, cat.ID)

	values := url.Values{
		"name":     {"Radio v2"},
		"category": {strconv.Itoa(int(cat.ID))},
		"price":    {"30.00"},
		"quantity": {"4"},
	}
	rr := httptest.NewRecorder()
	h.Edit(rr, formRequest("/products/edit/1/", values, 0, strconv.Itoa(int(p.ID))))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d body=%s", rr.Code, rr.Body.String())
	}
	var got models.Product
	dbi.First(&got, p.ID)
	if got.Name != "Radio v2" || got.Price.StringFixed(2) != "30.00" || got.Quantity != 4 {
		t.Fatalf("edit not persisted: %+v", got)
	}
}

func TestProductDeleteNotFound(t *testing.T) {
	dbi := setupTestDB(t)
	h := NewProductHandler(dbi)

	rr := httptest.NewRecorder()
	h.Delete(rr, formRequest("/products/delete/424242/", url.Values{}, 0, "424242"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing product, got %d", rr.Code)
	}
}

func TestProductDeleteCascadesToSales(t *testing.T) {
	dbi := setupTestDB(t)
	h := NewProductHandler(dbi)
	cat := createCategory(t, dbi, "Electronics")
	p := createProduct(t, dbi, "Radio", "25.50", 3, cat.ID)
	if err := dbi.Create(&models.Sale{ProductID: p.ID, QuantitySold: 2}).Error; err != nil {
		t.Fatalf("sale: %v", err)
	}

	rr := httptest.NewRecorder()
	h.Delete(rr, formRequest("/products/delete/1/", url.Values{}, 0, strconv.Itoa(int(p.ID))))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", rr.Code)
	}
	var sales int64
	dbi.Model(&models.Sale{}).Count(&sales)
	if sales != 0 {
		t.Fatalf("sales not cascaded: %d left", sales)
	}
}
