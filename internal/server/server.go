// Package server boots the application: store, cache, image disk, event
// forwarding and the HTTP (+ optional gRPC) listeners.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/pubqr/app/controllers"
	appgraphql "github.com/shashiranjanraj/pubqr/app/graphql"
	"github.com/shashiranjanraj/pubqr/app/repositories"
	"github.com/shashiranjanraj/pubqr/app/routes"
	"github.com/shashiranjanraj/pubqr/app/services"
	"github.com/shashiranjanraj/pubqr/config"
	"github.com/shashiranjanraj/pubqr/database/seeders"
	"github.com/shashiranjanraj/pubqr/internal/kernel"
	"github.com/shashiranjanraj/pubqr/pkg/cache"
	"github.com/shashiranjanraj/pubqr/pkg/database"
	"github.com/shashiranjanraj/pubqr/pkg/event"
	"github.com/shashiranjanraj/pubqr/pkg/graphql"
	"github.com/shashiranjanraj/pubqr/pkg/grpc"
	"github.com/shashiranjanraj/pubqr/pkg/logger"
	"github.com/shashiranjanraj/pubqr/pkg/migration"
	"github.com/shashiranjanraj/pubqr/pkg/storage"
	"github.com/shashiranjanraj/pubqr/pkg/workerpool"

	_ "github.com/shashiranjanraj/pubqr/database/migrations"
)

// App is a booted application.
type App struct {
	Store   *repositories.Store
	Cache   cache.Cache
	Disk    storage.Disk
	Orders  *services.OrderService
	Catalog *services.CatalogService
	Auth    *services.AuthService

	closers []func(context.Context) error
}

// Bootstrap connects every backing service named by the configuration.
// Redis and AMQP are optional: when they cannot be reached the app logs a
// warning and runs without them.
func Bootstrap(ctx context.Context) (*App, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	store, err := repositories.Open(ctx)
	if err != nil {
		return nil, err
	}
	a := &App{Store: store}
	a.onClose(store.Close)

	if store.Driver == "sql" {
		n, err := migration.New(database.DB, io.Discard).Run()
		if err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		if n > 0 {
			logger.Info("migrations applied", "count", n)
		}
	}

	if config.SeedOnBoot() {
		if err := seedEmpty(ctx, store); err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
	}

	if config.LogMongo() && store.MongoDB != nil {
		h, err := logger.NewMongoHandler(ctx, store.MongoDB, "logs")
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			logger.Tee(h)
			a.onClose(func(context.Context) error { h.Close(); return nil })
		}
	}

	a.Cache = cache.NewMemory()
	if config.CacheEnabled() {
		rc, err := cache.Connect(ctx)
		if err != nil {
			logger.Warn("redis unavailable, using in-process cache", "error", err)
		} else {
			a.Cache = rc
			a.onClose(func(context.Context) error { return rc.Close() })
		}
	}

	a.Disk, err = storage.Open(ctx)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	if url := config.AMQPURL(); url != "" {
		pub, err := event.DialPublisher(url)
		if err != nil {
			logger.Warn("amqp unavailable, order events stay in-process", "error", err)
		} else {
			pool := workerpool.New("events", 2, 256)
			pub.UsePool(pool)
			pub.Forward(event.OrderCreated, event.OrderStatusChanged)
			a.onClose(func(context.Context) error { return pub.Close() })
			// Registered after the publisher so queued publishes drain first.
			a.onClose(func(context.Context) error { pool.Shutdown(); return nil })
		}
	}

	a.Orders = services.NewOrderService(store.Orders, store.Catalog)
	a.Catalog = services.NewCatalogService(store.Catalog, a.Cache, a.Disk)
	a.Auth = services.NewAuthService()

	logger.Info("application booted",
		"store", store.Driver,
		"cache", a.Cache.Driver(),
		"disk", a.Disk.Name(),
		"strict_transitions", a.Orders.Strict,
	)
	return a, nil
}

// seedEmpty runs the seeders unless the store already has a menu.
func seedEmpty(ctx context.Context, store *repositories.Store) error {
	products, err := store.Catalog.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if len(products) > 0 {
		return nil
	}
	if err := seeders.RunAll(ctx, store, io.Discard); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("demo data seeded", "store", store.Driver)
	return nil
}

func (a *App) onClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse boot order.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Deps builds the route dependencies from the booted services.
func (a *App) Deps() (routes.Deps, error) {
	schema, err := appgraphql.NewSchema(a.Orders, a.Catalog)
	if err != nil {
		return routes.Deps{}, fmt.Errorf("graphql schema: %w", err)
	}

	d := routes.Deps{
		Auth:    controllers.NewAuthController(a.Auth),
		Orders:  controllers.NewOrderController(a.Orders),
		Catalog: controllers.NewCatalogController(a.Catalog),
		Health:  controllers.NewHealthController(a.Store),
		GraphQL: graphql.Handler(schema),
	}
	if local, ok := a.Disk.(*storage.Local); ok {
		d.StorageRoot = local.Root()
	}
	return d, nil
}

// Start boots the app and serves until SIGINT or SIGTERM, then drains
// in-flight requests.
func Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := Bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Close(closeCtx); err != nil {
			logger.Warn("shutdown", "error", err)
		}
	}()

	deps, err := app.Deps()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           kernel.NewRouter(deps).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if port := config.GRPCPort(); port != "" {
		gs, err := grpc.Start(port, app.Store.Ping)
		if err != nil {
			return err
		}
		defer grpc.Stop(gs)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("pubqr listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
