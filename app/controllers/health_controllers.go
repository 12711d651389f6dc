package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/pubqr/pkg/ctx"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store Pinger
}

func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

// Show handles GET /healthz.
func (c *HealthController) Show(cx *ctx.Context) {
	pingCtx, cancel := context.WithTimeout(cx.Context(), 2*time.Second)
	defer cancel()

	if err := c.store.Ping(pingCtx); err != nil {
		cx.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	cx.Success(map[string]string{"status": "ok"})
}
