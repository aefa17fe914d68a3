package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hoangtrn/fest-go/internal/config"
	"github.com/hoangtrn/fest-go/internal/notify"
	"github.com/hoangtrn/fest-go/internal/postgres"
	redisx "github.com/hoangtrn/fest-go/internal/redis"
	postgresrepo "github.com/hoangtrn/fest-go/internal/repository/postgres"
	redisrepo "github.com/hoangtrn/fest-go/internal/repository/redis"
	"github.com/hoangtrn/fest-go/internal/service"
	"github.com/hoangtrn/fest-go/internal/service/bookings"
	"github.com/hoangtrn/fest-go/internal/service/query"
	httpgin "github.com/hoangtrn/fest-go/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	cache      *redisrepo.Cache
	pubsub     *redisx.EntityPubSub
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	migrateDSN := "pgx5" + strings.TrimPrefix(dsn, "postgres")
	if err := postgres.Migrate(cfg.Postgres.MigrationsPath, migrateDSN); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redisx.New(context.Background(), redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisx.NewEntityPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(
		rdb, redisx.KeyRateLimit("submit"), cfg.Limits.SubmitPerWindow, cfg.Limits.SubmitWindow,
	)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)
	notifier := notify.NewLogNotifier(logger)

	services := service.NewServices(store, cache, pubsub, limiter, notifier, service.Config{
		Bookings: bookings.Config{},
		Query:    query.Config{CatalogTTL: cfg.Limits.CatalogTTL},
	})

	router := httpgin.NewRouter(services, idempotencyStore, logger, httpgin.RouterConfig{
		JWTSecret: cfg.Auth.JWTSecret,
	})

	return &App{
		cfg:    cfg,
		logger: logger,
		cache:  cache,
		pubsub: pubsub,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Drop local cache entries when another instance reports a change
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, func(ctx context.Context, kind, entityID string) {
			switch kind {
			case "order":
				_ = a.cache.InvalidateOrder(ctx, entityID)
			case "ticket":
				_ = a.cache.InvalidateTicket(ctx, entityID)
			case "catalog":
				_ = a.cache.InvalidateCatalog(ctx)
			}
		})
		if err != nil && err != context.Canceled {
			return fmt.Errorf("pubsub subscriber stopped: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
