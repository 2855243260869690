package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/puntu/internal/adapters/http"
	natsadapter "github.com/samirrijal/puntu/internal/adapters/nats"
	"github.com/samirrijal/puntu/internal/adapters/postgres"
	"github.com/samirrijal/puntu/internal/adapters/spatialite"
	"github.com/samirrijal/puntu/internal/adapters/valkey"
	"github.com/samirrijal/puntu/internal/core/ports"
	"github.com/samirrijal/puntu/internal/core/usecases"
	"github.com/samirrijal/puntu/internal/pkg/config"
	"github.com/samirrijal/puntu/internal/pkg/logging"
	"github.com/samirrijal/puntu/internal/pkg/metrics"
)

func main() {
	cfg, err := config.Load("puntu-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Spatial backend. Selected once here; a bootstrap failure is fatal —
	// the store must never run against an engine without spatial support.
	var (
		repo    ports.PointRepository
		storage ports.StorageHealth
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("postgis: %v", err)
		}
		defer db.Close()
		repo = postgres.NewPointRepo(db)
		storage = db
		go samplePoolStats(ctx, db)
		slog.Info("spatial backend ready", "driver", cfg.Database.Driver)
	case config.DriverSpatiaLite:
		db, err := spatialite.Open(spatialite.Config{
			Path:        cfg.Database.Path,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
		if err != nil {
			log.Fatalf("spatialite: %v", err)
		}
		defer db.Close()
		repo = spatialite.NewPointRepo(db)
		storage = db
		slog.Info("spatial backend ready", "driver", cfg.Database.Driver, "path", db.Path())
	default:
		log.Fatalf("unknown database driver %q", cfg.Database.Driver)
	}

	// Optional cache
	var (
		cache     ports.CacheService
		cacheConn *valkey.Cache
	)
	if cfg.Valkey.Addr != "" {
		c, err := valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			defer c.Close()
			cache = c
			cacheConn = c
		}
	}

	// Optional event publisher
	var events ports.EventPublisher
	if cfg.NATS.URL != "" {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			defer pub.Close()
			events = pub
		}
	}

	svc := usecases.NewPointService(repo, cache, events)

	deps := &http.Dependencies{
		Points:  svc,
		Storage: storage,
		Cache:   cacheConn,
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Puntu API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000, http://localhost:5173",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// samplePoolStats feeds pgx pool statistics into the Prometheus gauges.
func samplePoolStats(ctx context.Context, db *postgres.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(db.Pool.Stat())
		}
	}
}
