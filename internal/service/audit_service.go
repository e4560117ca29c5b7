package service

import (
	"context"

	"orgnotes-be/internal/pkg/logger"
	"orgnotes-be/pkg/events"
	pktNats "orgnotes-be/pkg/nats"
)

type IAuditService interface {
	Start() error
}

// auditService consumes the durable event stream and writes an audit trail.
// Unlike the in-process change feed, the durable consumer survives restarts,
// so every note mutation ends up in the log exactly once.
type auditService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewAuditService(subscriber *pktNats.Subscriber, log logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		logger:     log,
	}
}

func (s *auditService) Start() error {
	return s.subscriber.Subscribe("events.>", "audit-trail", func(ctx context.Context, event events.Event) error {
		s.logger.Info("Audit", event.EventType(), event.Payload())
		return nil
	})
}
