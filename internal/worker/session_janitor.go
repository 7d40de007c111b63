package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger drops expired sessions. Stores that expire keys on their own
// (redis) do not need one.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// SessionJanitor purges expired sessions on an interval until ctx ends.
type SessionJanitor struct {
	purger   Purger
	interval time.Duration
	logger   *zap.Logger
}

// NewSessionJanitor builds a janitor. A non-positive interval defaults to
// five minutes.
func NewSessionJanitor(purger Purger, interval time.Duration, logger *zap.Logger) *SessionJanitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionJanitor{purger: purger, interval: interval, logger: logger.Named("janitor")}
}

// Run blocks, purging once per interval.
func (j *SessionJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce purges expired sessions a single time.
func (j *SessionJanitor) RunOnce(ctx context.Context) {
	removed, err := j.purger.Purge(ctx)
	if err != nil {
		j.logger.Warn("session purge failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Debug("expired sessions purged", zap.Int64("removed", removed))
	}
}
