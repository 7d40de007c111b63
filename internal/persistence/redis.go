package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/config"
)

// Session lookups sit on every page request, so a slow Redis fails fast.
const (
	sessionDialTimeout = 2 * time.Second
	sessionIOTimeout   = 500 * time.Millisecond
)

// SessionClientOptions builds the go-redis options for the session store.
func SessionClientOptions(cfg config.RedisConfig, appName string) *redis.Options {
	opts := &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  sessionDialTimeout,
		ReadTimeout:  sessionIOTimeout,
		WriteTimeout: sessionIOTimeout,
		MinIdleConns: 1,
	}
	if appName != "" {
		opts.ClientName = appName + "-sessions"
	}
	return opts
}

// OpenSessionClient connects to Redis. An unreachable server is logged, not
// fatal; readiness reports it until it comes up.
func OpenSessionClient(ctx context.Context, cfg config.RedisConfig, appName string, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(SessionClientOptions(cfg, appName))
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("session redis ready", zap.String("addr", cfg.Addr))
	}
	return client
}
