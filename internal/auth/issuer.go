package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/examhub/exam-service/internal/domain"
)

// IssuedCredential is the result of a successful Issue call.
type IssuedCredential struct {
	Token      string
	Credential Credential
}

// Issuer mints credentials for authenticated principals.
type Issuer struct {
	codec *Codec
	ttl   time.Duration
}

// NewIssuer builds an issuer with the default credential lifetime.
func NewIssuer(codec *Codec, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{codec: codec, ttl: ttl}
}

// Issue mints a credential using the configured lifetime.
func (i *Issuer) Issue(subjectID string, role domain.Role) (*IssuedCredential, error) {
	return i.IssueFor(subjectID, role, i.ttl)
}

// IssueFor mints a credential valid for ttl. Every call draws a fresh random jti.
func (i *Issuer) IssueFor(subjectID string, role domain.Role, ttl time.Duration) (*IssuedCredential, error) {
	if subjectID == "" {
		return nil, errors.New("subject id is empty")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("credential lifetime must be positive, got %s", ttl)
	}

	jti, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("generate jti: %w", err)
	}

	// The wire format carries whole seconds; keep the returned values in step.
	issuedAt := i.codec.clock().UTC().Truncate(time.Second)
	cred := Credential{
		SubjectID: subjectID,
		Role:      role,
		ID:        jti.String(),
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl).Truncate(time.Second),
	}

	token, err := i.codec.Encode(cred)
	if err != nil {
		return nil, fmt.Errorf("sign credential: %w", err)
	}
	return &IssuedCredential{Token: token, Credential: cred}, nil
}
