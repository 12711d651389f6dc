package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/pubqr/config"
	"github.com/shashiranjanraj/pubqr/pkg/auth"
	"github.com/shashiranjanraj/pubqr/pkg/middleware"
)

func TestHasRole(t *testing.T) {
	config.Set("JWT_SECRET", "rbac-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	staffOnly := middleware.AuthMiddleware(HasRole(auth.RoleStaff)(next))
	kitchenOnly := middleware.AuthMiddleware(HasRole("kitchen")(next))

	token, err := auth.GenerateToken(auth.RoleStaff)
	assert.NoError(t, err)

	serve := func(h http.Handler) int {
		req := httptest.NewRequest(http.MethodPost, "/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, serve(staffOnly))
	assert.Equal(t, http.StatusForbidden, serve(kitchenOnly))

	rec := httptest.NewRecorder()
	HasRole(auth.RoleStaff)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
