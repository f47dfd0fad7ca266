package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpin "deliveryapp/internal/adapters/in/http"
	"deliveryapp/internal/adapters/out/postgres"
	"deliveryapp/internal/jobs"
	"deliveryapp/internal/pkg/discovery"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// Run starts service with the process arguments and blocks until SIGINT or SIGTERM.
func Run(service string) {
	config, err := LoadConfig(service, os.Args[1:])
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := NewLogger(config.Env).With("service", service)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app, err := NewApp(ctx, config, logger)
	if err != nil {
		log.Fatalf("failed to build %s: %v", service, err)
	}
	if err = app.Run(ctx); err != nil {
		log.Fatalf("%s stopped: %v", service, err)
	}
	logger.Info("Service stopped")
}

// NewLogger writes text for development and JSON everywhere else.
func NewLogger(env string) *slog.Logger {
	if env == "development" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// App is one running service: its databases, its registry membership and its HTTP server.
type App struct {
	config   Config
	logger   *slog.Logger
	gormDB   *gorm.DB
	sqlDB    *sqlx.DB
	redis    *redis.Client
	registry discovery.Registry
	echo     *echo.Echo
	jobs     *jobs.JobManager
}

type Option func(*App)

// WithRegistry replaces the registry built from the config.
func WithRegistry(registry discovery.Registry) Option {
	return func(a *App) {
		a.registry = registry
	}
}

// NewApp connects to the database, migrates the service tables and builds the HTTP server.
func NewApp(ctx context.Context, config Config, logger *slog.Logger, opts ...Option) (*App, error) {
	app := &App{config: config, logger: logger}
	for _, opt := range opts {
		opt(app)
	}

	if err := app.connect(ctx); err != nil {
		app.Close()
		return nil, err
	}

	root := NewCompositionRoot(config, logger, app.gormDB, app.sqlDB, app.registry)
	schema, err := root.Schema()
	if err != nil {
		app.Close()
		return nil, err
	}
	if err = postgres.Migrate(app.gormDB, schema); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to migrate %s tables: %w", schema, err)
	}

	router, err := root.Router()
	if err != nil {
		app.Close()
		return nil, err
	}
	if app.echo, err = httpin.NewEcho(ctx, config.Service, logger, router); err != nil {
		app.Close()
		return nil, err
	}

	instance := discovery.NewInstance(config.Service, config.AdvertiseURL)
	app.jobs = jobs.NewJobManager().
		Add("registry_heartbeat", jobs.NewRegistryHeartbeatJob(app.registry, instance, config.HeartbeatInterval, logger))

	return app, nil
}

func (a *App) connect(ctx context.Context) error {
	var err error
	a.sqlDB, err = sqlx.ConnectContext(ctx, "postgres", a.config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	a.sqlDB.SetMaxOpenConns(a.config.DBMaxOpenConns)

	a.gormDB, err = gorm.Open(postgresdriver.Open(a.config.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to open gorm: %w", err)
	}
	pool, err := a.gormDB.DB()
	if err != nil {
		return err
	}
	pool.SetMaxOpenConns(a.config.DBMaxOpenConns)
	a.logger.Info("Postgres connected")

	if a.registry != nil {
		return nil
	}
	if a.config.RegistryURL != "" {
		if a.redis, err = discovery.Connect(ctx, a.config.RegistryURL); err != nil {
			return err
		}
		a.registry = discovery.NewRedisRegistry(a.redis, 3*a.config.HeartbeatInterval)
		a.logger.Info("Redis registry connected")
		return nil
	}
	peers, err := discovery.ParsePeers(a.config.PeerServices)
	if err != nil {
		return err
	}
	a.registry = discovery.NewStaticRegistry(peers)
	return nil
}

// Handler exposes the HTTP server without binding a port.
func (a *App) Handler() http.Handler {
	return a.echo
}

// Run starts the jobs and the HTTP server and shuts both down once ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.jobs.StartAll(); err != nil {
		return err
	}
	defer a.jobs.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("HTTP server started", "port", a.config.HTTPPort)
		if err := a.echo.Start(":" + a.config.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.echo.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close releases the connections. It is safe on a partly built App.
func (a *App) Close() {
	if a.sqlDB != nil {
		_ = a.sqlDB.Close()
	}
	if a.gormDB != nil {
		if pool, err := a.gormDB.DB(); err == nil {
			_ = pool.Close()
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
