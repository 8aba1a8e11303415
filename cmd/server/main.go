// Package main boots the task manager API: configuration, logging, telemetry,
// the Postgres store, and the samber/do dependency graph, then runs the HTTP
// server until SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "taskmanager-api/internal/adapters/http"
	"taskmanager-api/internal/adapters/http/handlers"
	"taskmanager-api/internal/adapters/http/middleware"

	"taskmanager-api/internal/app"
	"taskmanager-api/internal/auth"
	"taskmanager-api/internal/platform/config"
	"taskmanager-api/internal/platform/health"
	"taskmanager-api/internal/platform/logging"
	"taskmanager-api/internal/platform/telemetry"
	"taskmanager-api/internal/ports"
	"taskmanager-api/internal/storage/postgres"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	bootstrapTimeout      = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	metrics, stopTelemetry, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// The schema must be in place before the first request arrives.
	bootCtx, bootCancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer bootCancel()

	store, err := postgres.Connect(bootCtx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer store.Close()

	if err := store.Bootstrap(bootCtx); err != nil {
		return fmt.Errorf("bootstrapping database: %w", err)
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, metrics)
	do.ProvideValue(injector, store)
	registerDependencies(injector, cfg, logger)

	// Invoking the server eagerly wires the whole graph, so a broken
	// provider fails here instead of on the first request.
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}
	do.MustInvoke[ports.HealthRegistry](injector).Register(store)

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start() }()

	if err := awaitSignal(logger, serverErr); err != nil {
		return err
	}

	drainCtx, drainCancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer drainCancel()
	if err := server.Shutdown(drainCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	<-serverErr

	flushCtx, flushCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer flushCancel()
	if err := stopTelemetry(flushCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// awaitSignal blocks until SIGINT/SIGTERM or a server failure. A signal
// returns nil so the caller proceeds to graceful shutdown; a server error is
// returned as-is.
func awaitSignal(logger *slog.Logger, serverErr <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		return nil
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}
}

// initTelemetry sets up the tracer and meter providers and returns the metric
// instruments plus a shutdown function that flushes both providers. When
// telemetry is disabled the metrics are nil and shutdown is a no-op; the
// middleware tolerates nil metrics.
func initTelemetry(ctx context.Context, cfg *config.Config) (*telemetry.Metrics, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Telemetry.Enabled {
		return nil, noop, nil
	}

	tc := cfg.Telemetry
	tp, err := telemetry.InitTracer(ctx, tc.ServiceName, tc.Exporter, tc.Endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx, tc.ServiceName, tc.Exporter, tc.Endpoint)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, tc.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, fmt.Errorf("creating metrics: %w", err)
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}
	return metrics, shutdown, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	// Repositories on the shared pool.
	do.Provide(injector, func(i do.Injector) (ports.UserRepository, error) {
		store := do.MustInvoke[*postgres.Store](i)
		return postgres.NewUserRepository(store.Pool()), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.RoleRepository, error) {
		store := do.MustInvoke[*postgres.Store](i)
		return postgres.NewRoleRepository(store.Pool()), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ProjectRepository, error) {
		store := do.MustInvoke[*postgres.Store](i)
		return postgres.NewProjectRepository(store.Pool()), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TaskRepository, error) {
		store := do.MustInvoke[*postgres.Store](i)
		return postgres.NewTaskRepository(store.Pool()), nil
	})

	// Security providers.
	do.Provide(injector, func(_ do.Injector) (ports.TokenProvider, error) {
		return auth.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.PasswordHasher, error) {
		return auth.NewBcryptHasher(cfg.Auth.BcryptCost), nil
	})

	// Application services.
	do.Provide(injector, func(i do.Injector) (ports.UserService, error) {
		users := do.MustInvoke[ports.UserRepository](i)
		roles := do.MustInvoke[ports.RoleRepository](i)
		hasher := do.MustInvoke[ports.PasswordHasher](i)
		tokens := do.MustInvoke[ports.TokenProvider](i)
		return app.NewUserService(users, roles, hasher, tokens, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ProjectService, error) {
		projects := do.MustInvoke[ports.ProjectRepository](i)
		tasks := do.MustInvoke[ports.TaskRepository](i)
		users := do.MustInvoke[ports.UserRepository](i)
		return app.NewProjectService(projects, tasks, users, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	// HTTP handlers.
	do.Provide(injector, func(i do.Injector) (*handlers.AuthHandler, error) {
		svc := do.MustInvoke[ports.UserService](i)
		return handlers.NewAuthHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.UserHandler, error) {
		svc := do.MustInvoke[ports.UserService](i)
		return handlers.NewUserHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ProjectHandler, error) {
		svc := do.MustInvoke[ports.ProjectService](i)
		return handlers.NewProjectHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		authH := do.MustInvoke[*handlers.AuthHandler](i)
		projH := do.MustInvoke[*handlers.ProjectHandler](i)
		userH := do.MustInvoke[*handlers.UserHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		tokens := do.MustInvoke[ports.TokenProvider](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(authH, projH, userH, healthH, tokens,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
