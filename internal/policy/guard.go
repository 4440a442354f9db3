package policy

import (
	"net/http"

	"github.com/diewo77/stockroom/auth"
)

// Guard gates handlers on the authenticated user's role.
type Guard struct {
	resolver RoleResolver
}

func NewGuard(resolver RoleResolver) *Guard { return &Guard{resolver: resolver} }

// RequireRole permits the request only when the user's role is one of the
// allowed names. Anything else is sent to the login page, keeping the
// originally requested path for the post-login redirect.
func (g *Guard) RequireRole(next http.Handler, allowed ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, auth.LoginURL(r), http.StatusSeeOther)
			return
		}
		role, err := g.resolver.Resolve(r.Context(), uid)
		if err != nil {
			http.Redirect(w, r, auth.LoginURL(r), http.StatusSeeOther)
			return
		}
		for _, a := range allowed {
			if role == a {
				next.ServeHTTP(w, r)
				return
			}
		}
		http.Redirect(w, r, auth.LoginURL(r), http.StatusSeeOther)
	})
}
