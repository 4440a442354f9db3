package policy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diewo77/stockroom/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRoleAllows(t *testing.T) {
	g := NewGuard(&staticResolver{roles: map[uint]string{1: "staff"}})
	h := g.RequireRole(okHandler(), "staff", "admin")

	req := httptest.NewRequest(http.MethodGet, "/products/", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 1))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireRoleDeniesWrongRole(t *testing.T) {
	g := NewGuard(&staticResolver{roles: map[uint]string{1: "staff"}})
	h := g.RequireRole(okHandler(), "admin")

	req := httptest.NewRequest(http.MethodGet, "/products/delete/3/", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 1))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?next=%2Fproducts%2Fdelete%2F3%2F", rr.Header().Get("Location"))
}

func TestRequireRoleDeniesAnonymous(t *testing.T) {
	g := NewGuard(&staticResolver{roles: map[uint]string{}})
	h := g.RequireRole(okHandler(), "staff", "admin")

	req := httptest.NewRequest(http.MethodGet, "/sales/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?next=%2Fsales%2F", rr.Header().Get("Location"))
}
