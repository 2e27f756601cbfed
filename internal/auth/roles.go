package auth

import (
	"log/slog"
	"net/http"
)

// RoleGuard enforces the three-role model on route groups: employees get
// nothing here, managers pass the manager guard, admins pass both.
type RoleGuard struct {
	logger *slog.Logger
}

func NewRoleGuard(logger *slog.Logger) *RoleGuard {
	return &RoleGuard{logger: logger}
}

func (g *RoleGuard) RequireAdmin() func(http.Handler) http.Handler {
	return g.require("admin", func(u *User) bool { return u.IsAdmin() })
}

func (g *RoleGuard) RequireManager() func(http.Handler) http.Handler {
	return g.require("manager", func(u *User) bool { return u.IsManager() })
}

func (g *RoleGuard) require(role string, allowed func(*User) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok || u == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !allowed(u) {
				g.logger.Warn("access denied: insufficient role",
					"user_id", u.ID,
					"user_role", u.Role,
					"required_role", role)
				http.Error(w, "Forbidden: insufficient privileges", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
