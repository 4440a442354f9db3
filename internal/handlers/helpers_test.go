package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/stockroom/auth"
	"github.com/diewo77/stockroom/internal/db"
	"github.com/diewo77/stockroom/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test; _fk=1 turns on cascade deletes.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_fk=1"
	dbi, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(dbi); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, name := range []string{models.RoleAdmin, models.RoleStaff} {
		if err := dbi.Create(&models.Role{Name: name}).Error; err != nil {
			t.Fatalf("role %s: %v", name, err)
		}
	}
	return dbi
}

func createUser(t *testing.T, dbi *gorm.DB, username, roleName string) models.User {
	t.Helper()
	var role models.Role
	if err := dbi.Where("name = ?", roleName).First(&role).Error; err != nil {
		t.Fatalf("find role: %v", err)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	u := models.User{Username: username, Password: string(hash), RoleID: role.ID}
	if err := dbi.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createCategory(t *testing.T, dbi *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	if err := dbi.Create(&c).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

func createProduct(t *testing.T, dbi *gorm.DB, name, price string, qty int, categoryID uint) models.Product {
	t.Helper()
	p := models.Product{Name: name, CategoryID: categoryID, Price: decimal.RequireFromString(price), Quantity: qty}
	if err := dbi.Create(&p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

// formRequest builds a POST with url-encoded form values, optionally
// authenticated as uid, and sets the id path value when given.
func formRequest(target string, values url.Values, uid uint, id string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if uid != 0 {
		req = req.WithContext(auth.WithUserID(req.Context(), uid))
	}
	if id != "" {
		req.SetPathValue("id", id)
	}
	return req
}

func getRequest(target, id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if id != "" {
		req.SetPathValue("id", id)
	}
	return req
}
