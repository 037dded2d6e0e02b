package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/examhub/exam-service/internal/auth"
	"github.com/examhub/exam-service/internal/events"
	"github.com/examhub/exam-service/internal/repository"
)

// Revocation reasons recorded on credential_revoked events.
const (
	RevokeReasonLogout = "logout"
	RevokeReasonAdmin  = "admin"
)

// AuthService coordinates login, logout and forced revocation.
type AuthService struct {
	credentials CredentialStore
	issuer      *auth.Issuer
	verifier    *auth.Verifier
	revocations repository.RevocationRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	timeout     time.Duration
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Credentials       CredentialStore
	Issuer            *auth.Issuer
	Verifier          *auth.Verifier
	Revocations       repository.RevocationRepository
	Dispatcher        events.Dispatcher
	Logger            *zap.Logger
	RevocationTimeout time.Duration
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := deps.RevocationTimeout
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &AuthService{
		credentials: deps.Credentials,
		issuer:      deps.Issuer,
		verifier:    deps.Verifier,
		revocations: deps.Revocations,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
		timeout:     timeout,
	}
}

// Login checks the email/password pair and mints a credential.
func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.IssuedCredential, error) {
	user, err := s.credentials.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.publish(ctx, events.EventLoginFailed, events.Actor{}, events.LoginFailedPayload{Email: email})
		}
		return nil, err
	}

	issued, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventLoginSucceeded,
		events.Actor{SubjectID: user.ID, Role: user.Role},
		events.LoginSucceededPayload{
			CredentialID: issued.Credential.ID,
			ExpiresAt:    issued.Credential.ExpiresAt,
		})
	return issued, nil
}

// Logout revokes the caller's own verified credential.
func (s *AuthService) Logout(ctx context.Context, cred *auth.Credential) error {
	if err := s.revoke(ctx, cred); err != nil {
		return err
	}
	s.publish(ctx, events.EventCredentialRevoked,
		events.Actor{SubjectID: cred.SubjectID, Role: cred.Role},
		revokedPayload(cred, RevokeReasonLogout))
	return nil
}

// RevokeCredential lets an operator invalidate someone else's credential
// given its wire form. The signature must still verify; an expired
// credential needs no record and succeeds as-is.
func (s *AuthService) RevokeCredential(ctx context.Context, actor auth.Principal, raw string) error {
	cred, err := s.verifier.Decode(raw)
	if errors.Is(err, auth.ErrExpired) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.revoke(ctx, cred); err != nil {
		return err
	}
	s.publish(ctx, events.EventCredentialRevoked,
		events.Actor{SubjectID: actor.SubjectID, Role: actor.Role},
		revokedPayload(cred, RevokeReasonAdmin))
	return nil
}

func (s *AuthService) revoke(ctx context.Context, cred *auth.Credential) error {
	revokeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.revocations.Revoke(revokeCtx, cred.ID, cred.ExpiresAt); err != nil {
		return fmt.Errorf("%w: %w", auth.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

func revokedPayload(cred *auth.Credential, reason string) events.CredentialRevokedPayload {
	return events.CredentialRevokedPayload{
		CredentialID: cred.ID,
		OwnerID:      cred.SubjectID,
		ExpiresAt:    cred.ExpiresAt,
		Reason:       reason,
	}
}
