package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/diagnosis/hotel-frontdesk/pkg/config"
	"github.com/diagnosis/hotel-frontdesk/pkg/database"
	"github.com/diagnosis/hotel-frontdesk/pkg/events"
	"github.com/diagnosis/hotel-frontdesk/pkg/idempotency"
	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
	mw "github.com/diagnosis/hotel-frontdesk/pkg/middleware"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/handlers"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/repository"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/repository/memory"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/repository/postgres"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/service"
)

func main() {
	cfg := config.Load()
	logger.Configure(cfg.LogLevel)
	ctx := context.Background()
	loc := cfg.Property.Location()

	// Repositories
	var store repository.Store
	switch cfg.Store.Driver {
	case "memory":
		db := memory.New()
		if cfg.Store.SeedDemo {
			memory.SeedDemo(db, domain.DateOf(time.Now().In(loc)))
		}
		store = db.Store()
		logger.Warn("Using in-memory store; data is lost on restart")
	case "postgres":
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
	default:
		logger.Error("Unknown store driver", "driver", cfg.Store.Driver)
		os.Exit(1)
	}

	// Event bus
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATS.URL != "" {
		bus, err := events.NewNATSEventBus(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		publisher = bus
	}
	defer publisher.Close()

	// Idempotency cache
	var handlerOpts []handlers.Option
	if cfg.Redis.URL != "" {
		client, err := idempotency.Dial(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, idempotency keys disabled", "error", err)
		} else {
			defer client.Close()
			handlerOpts = append(handlerOpts,
				handlers.WithIdempotency(idempotency.NewRedisStore(client), cfg.Redis.IdempotencyTTL))
		}
	}

	svc := service.New(store, publisher,
		service.WithLocation(loc),
		service.WithOccupancyWorkers(cfg.Property.OccupancyWorkers),
	)
	h := handlers.New(handlers.Services{
		Reservations: svc,
		Rooms:        svc,
		Guests:       svc,
		Maintenance:  svc,
	}, cfg.Auth, handlerOpts...)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("frontdesk"))
	r.Use(mw.Logging)
	r.Use(chimw.Recoverer)
	r.Use(mw.Health)

	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down frontdesk service...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Frontdesk service shutdown error", "error", err)
		}
	}()

	logger.Info("Starting frontdesk service",
		"port", cfg.Server.Port, "store", cfg.Store.Driver, "timezone", loc.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Frontdesk service error", "error", err)
		os.Exit(1)
	}
	<-done
}
