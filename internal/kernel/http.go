// Package kernel builds the HTTP handler: the global middleware stack
// followed by the API routes.
package kernel

import (
	"time"

	"github.com/shashiranjanraj/pubqr/app/routes"
	"github.com/shashiranjanraj/pubqr/config"
	"github.com/shashiranjanraj/pubqr/pkg/metrics"
	"github.com/shashiranjanraj/pubqr/pkg/middleware"
	"github.com/shashiranjanraj/pubqr/pkg/reqid"
	"github.com/shashiranjanraj/pubqr/pkg/router"
)

// NewRouter returns a router with middleware installed and the API
// registered.
func NewRouter(deps routes.Deps) *router.Router {
	r := router.New()

	// Outermost first:
	//  1. Prometheus metrics, for total latency
	//  2. Recovery, before anything can panic
	//  3. Request ID, before anything logs
	//  4. Logger, tags the context with request_id
	//  5. CORS
	//  6. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.CORSOptionsFor(config.CORSOrigins())))
	r.Use(middleware.RateLimit(config.RateLimitPerMinute(), time.Minute))

	routes.RegisterAPI(r, deps)
	return r
}
