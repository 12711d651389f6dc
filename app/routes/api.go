// Package routes registers the HTTP surface. Every endpoint is served both
// at the root and under /api.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/pubqr/app/controllers"
	"github.com/shashiranjanraj/pubqr/pkg/auth"
	"github.com/shashiranjanraj/pubqr/pkg/ctx"
	"github.com/shashiranjanraj/pubqr/pkg/metrics"
	"github.com/shashiranjanraj/pubqr/pkg/middleware"
	"github.com/shashiranjanraj/pubqr/pkg/rbac"
	"github.com/shashiranjanraj/pubqr/pkg/response"
	"github.com/shashiranjanraj/pubqr/pkg/router"
)

// Deps are the handlers the API is built from.
type Deps struct {
	Auth    *controllers.AuthController
	Orders  *controllers.OrderController
	Catalog *controllers.CatalogController
	Health  *controllers.HealthController

	// GraphQL is mounted at /graphql when set.
	GraphQL http.Handler
	// StorageRoot, when set, serves locally stored images under /storage/.
	StorageRoot string
}

func RegisterAPI(r *router.Router, d Deps) {
	for _, prefix := range []string{"", "/api"} {
		registerResources(r.Group(prefix), names(prefix), d)
	}

	// Alias of POST /auth kept for existing clients.
	r.Post("/api/auth/login", "api.auth.login", ctx.Wrap(d.Auth.Login))

	r.Get("/healthz", "health", ctx.Wrap(d.Health.Show))
	r.Handle("/metrics", "metrics", metrics.Handler())
	if d.StorageRoot != "" {
		r.Handle("/storage/*", "storage", http.StripPrefix("/storage/", http.FileServer(http.Dir(d.StorageRoot))))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

func registerResources(g *router.Group, name func(string) string, d Deps) {
	g.Post("/auth", name("auth"), ctx.Wrap(d.Auth.Login))

	g.Get("/orders", name("orders.index"), ctx.Wrap(d.Orders.Index))
	g.Post("/orders", name("orders.store"), ctx.Wrap(d.Orders.Store))
	g.Get("/orders/{id}", name("orders.show"), ctx.Wrap(d.Orders.Show))

	g.Get("/products", name("products.index"), ctx.Wrap(d.Catalog.Products))
	g.Get("/categories", name("categories.index"), ctx.Wrap(d.Catalog.Categories))

	staff := g.Group("", middleware.AuthMiddleware, rbac.HasRole(auth.RoleStaff))
	staff.Patch("/orders/{id}", name("orders.update"), ctx.Wrap(d.Orders.UpdateStatus))
	staff.Post("/products", name("products.store"), ctx.Wrap(d.Catalog.StoreProduct))
	staff.Post("/products/{id}/image", name("products.image"), ctx.Wrap(d.Catalog.UploadImage))
	staff.Post("/categories", name("categories.store"), ctx.Wrap(d.Catalog.StoreCategory))

	if d.GraphQL != nil {
		g.Get("/graphql", name("graphql"), d.GraphQL.ServeHTTP)
		g.Post("/graphql", name("graphql.post"), d.GraphQL.ServeHTTP)
	}
}

func names(prefix string) func(string) string {
	if prefix == "" {
		return func(n string) string { return n }
	}
	return func(n string) string { return "api." + n }
}
