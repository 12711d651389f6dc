// Package rbac restricts routes to token roles.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/pubqr/pkg/middleware"
	"github.com/shashiranjanraj/pubqr/pkg/response"
)

// HasRole allows access only to tokens carrying one of roles.
// AuthMiddleware must run first.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
