package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/examhub/exam-service/internal/events"
)

// AuditService writes auth events to the audit log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service. The logger is scoped as "audit".
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.handleLoginSucceeded)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
	a.dispatcher.Subscribe(events.EventCredentialRevoked, a.handleCredentialRevoked)
}

func (a *AuditService) handleLoginSucceeded(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.LoginSucceededPayload)
	a.logger.Info("LoginSucceeded",
		zap.String("event_id", event.ID),
		zap.String("subject_id", event.Actor.SubjectID),
		zap.String("role", string(event.Actor.Role)),
		zap.String("credential_id", payload.CredentialID),
		zap.Time("expires_at", payload.ExpiresAt))
	return nil
}

func (a *AuditService) handleLoginFailed(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.LoginFailedPayload)
	a.logger.Warn("LoginFailed",
		zap.String("event_id", event.ID),
		zap.String("email", payload.Email))
	return nil
}

func (a *AuditService) handleCredentialRevoked(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.CredentialRevokedPayload)
	a.logger.Info("CredentialRevoked",
		zap.String("event_id", event.ID),
		zap.String("actor_id", event.Actor.SubjectID),
		zap.String("owner_id", payload.OwnerID),
		zap.String("credential_id", payload.CredentialID),
		zap.String("reason", payload.Reason),
		zap.Time("expires_at", payload.ExpiresAt))
	return nil
}
