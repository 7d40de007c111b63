package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staffing-portal/internal/api/http"
	"github.com/spec-kit/staffing-portal/internal/apiclient"
	"github.com/spec-kit/staffing-portal/internal/config"
	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/observability"
	"github.com/spec-kit/staffing-portal/internal/persistence"
	"github.com/spec-kit/staffing-portal/internal/service"
	"github.com/spec-kit/staffing-portal/internal/session"
	"github.com/spec-kit/staffing-portal/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the portal web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(cfg.Metrics.Namespace)
	}

	store, closeStore, purger, err := openSessionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	if purger != nil {
		go worker.NewSessionJanitor(purger, 0, logger).Run(ctx)
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	client := apiclient.NewClient(cfg.API.BaseURL, cfg.API.Timeout(),
		apiclient.WithLogger(logger),
		apiclient.WithMetrics(metrics),
	)

	app, err := httptransport.NewApp(httptransport.Dependencies{
		AppName:        cfg.App.Name,
		Version:        cfg.App.Version,
		RequestTimeout: cfg.App.RequestTimeout(),
		API:            client,
		Store:          store,
		StoreName:      cfg.Session.Store,
		Cookie:         session.Options{CookieName: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure},
		Dispatcher:     dispatcher,
		Logger:         logger,
		Metrics:        metrics,
	})
	if err != nil {
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("portal listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("api", client.BaseURL()),
			zap.String("session_store", cfg.Session.Store))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("fiber listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

// openSessionStore builds the configured store. The returned purger is nil
// for backends that expire entries on their own.
func openSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, func(), worker.Purger, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client := persistence.OpenSessionClient(ctx, cfg.Redis, cfg.App.Name, logger)
		closeClient := func() { _ = client.Close() }
		return session.NewRedisStore(client, cfg.Session.KeyPrefix), closeClient, nil, nil

	case config.SessionStorePostgres:
		pool, err := persistence.OpenSessionPool(ctx, cfg.Postgres, cfg.App.Name, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres session pool: %w", err)
		}
		store := session.NewPostgresStore(pool)
		return store, pool.Close, store, nil

	default:
		store := session.NewMemoryStore()
		return store, func() {}, store, nil
	}
}
