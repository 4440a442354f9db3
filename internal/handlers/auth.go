package handlers

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/stockroom/auth"
	"github.com/diewo77/stockroom/internal/models"
	"github.com/diewo77/stockroom/validation"
	"github.com/diewo77/stockroom/view"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{db: db} }

func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Errors"]; !ok {
		// Templates reach into .Errors.<field>; keep it a map, never nil.
		data["Errors"] = validation.Violations{}
	}
	if err := view.Render(w, r, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// safeNext only allows local redirect targets.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

// Register handles GET/POST /register/. New accounts get the staff role.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "register.html", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, r, "register.html", map[string]any{"Error": "invalid form"})
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password1 := r.FormValue("password1")
	password2 := r.FormValue("password2")

	v := validation.Violations{}
	validation.Required("username", username, v)
	validation.Required("password1", password1, v)
	if password1 != password2 {
		v["password2"] = "passwords_do_not_match"
	}
	if v.Empty() {
		var count int64
		if err := h.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil || count > 0 {
			v["username"] = "already_taken"
		}
	}
	if !v.Empty() {
		renderTemplate(w, r, "register.html", map[string]any{"Errors": v, "Username": username, "Email": email})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password1), bcrypt.DefaultCost)
	if err != nil {
		renderTemplate(w, r, "register.html", map[string]any{"Error": "could not create account"})
		return
	}
	var role models.Role
	if err := h.db.Where("name = ?", models.RoleStaff).First(&role).Error; err != nil {
		renderTemplate(w, r, "register.html", map[string]any{"Error": "could not create account"})
		return
	}
	user := models.User{Username: username, Email: email, Password: string(hash), RoleID: role.ID}
	if err := h.db.Create(&user).Error; err != nil {
		renderTemplate(w, r, "register.html", map[string]any{"Error": "could not create account"})
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Login handles GET/POST /login. A valid login redirects to the `next`
// parameter carried through the form, so users land back on the page that
// sent them to login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		// The form is shown even to an authenticated user: the role guard
		// sends denied users here, and redirecting them straight back to
		// `next` would bounce between the two endpoints forever.
		renderTemplate(w, r, "login.html", map[string]any{"Next": r.URL.Query().Get("next")})
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, r, "login.html", map[string]any{"Error": "invalid form"})
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")
	if username == "" || password == "" {
		renderTemplate(w, r, "login.html", map[string]any{"Error": "username and password required", "Next": next})
		return
	}
	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		renderTemplate(w, r, "login.html", map[string]any{"Error": "invalid credentials", "Next": next})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		renderTemplate(w, r, "login.html", map[string]any{"Error": "invalid credentials", "Next": next})
		return
	}
	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
