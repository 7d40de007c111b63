package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/observability"
)

// AuditService records portal events in the log and in metrics.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to every portal event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.metrics.RecordEvent(string(event.Type))

	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.Time("timestamp", event.Timestamp),
	}
	if event.Actor.Role != "" {
		fields = append(fields, zap.String("role", string(event.Actor.Role)))
	}
	if event.Actor.Email != "" {
		fields = append(fields, zap.String("email", event.Actor.Email))
	}
	if event.Actor.SessionID != "" {
		fields = append(fields, zap.String("session_id", event.Actor.SessionID))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}

	switch event.Type {
	case events.EventSessionExpired, events.EventLoggedOut:
		a.logger.Debug("session event", fields...)
	default:
		a.logger.Info("portal event", fields...)
	}
	return nil
}
