package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/config"
)

// ErrPostgresNotConfigured is returned when a pool is requested without a DSN.
var ErrPostgresNotConfigured = errors.New("postgres not configured")

const sessionPoolHealthCheck = 30 * time.Second

// SessionPoolConfig parses cfg.DSN and applies the sizing the session store
// runs with. Connections identify themselves as "<appName>-sessions" unless
// the DSN already names an application.
func SessionPoolConfig(cfg config.PostgresConfig, appName string) (*pgxpool.Config, error) {
	if cfg.DSN == "" {
		return nil, ErrPostgresNotConfigured
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= poolCfg.MaxConns {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}
	poolCfg.HealthCheckPeriod = sessionPoolHealthCheck

	if poolCfg.ConnConfig.RuntimeParams == nil {
		poolCfg.ConnConfig.RuntimeParams = map[string]string{}
	}
	if _, ok := poolCfg.ConnConfig.RuntimeParams["application_name"]; !ok && appName != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = appName + "-sessions"
	}
	return poolCfg, nil
}

// OpenSessionPool connects the pool backing the postgres session store and,
// when cfg.RunMigrations is set, brings the sessions table up to date.
func OpenSessionPool(ctx context.Context, cfg config.PostgresConfig, appName string, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := SessionPoolConfig(cfg, appName)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if cfg.RunMigrations {
		if err := RunMigrations(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	logger.Info("session pool ready",
		zap.Int32("max_conns", poolCfg.MaxConns),
		zap.String("application_name", poolCfg.ConnConfig.RuntimeParams["application_name"]))
	return pool, nil
}
