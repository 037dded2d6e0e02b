package events

import (
	"time"

	"github.com/examhub/exam-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
	EventCredentialRevoked EventType = "credential_revoked"
)

// Actor identifies who caused an event. SubjectID is empty for anonymous
// callers such as a failed login.
type Actor struct {
	SubjectID string      `json:"subject_id,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
}

// Event represents an auth event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	CredentialID string    `json:"credential_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginFailedPayload payload. The email is recorded as given.
type LoginFailedPayload struct {
	Email string `json:"email"`
}

// CredentialRevokedPayload payload.
type CredentialRevokedPayload struct {
	CredentialID string    `json:"credential_id"`
	OwnerID      string    `json:"owner_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	Reason       string    `json:"reason"`
}
