package auth

import (
	"context"
	"strings"

	"github.com/examhub/exam-service/internal/domain"
)

const bearerPrefix = "Bearer "

// Gate authenticates requests and authorizes them against role sets.
// It holds no per-request state.
type Gate struct {
	verifier *Verifier
}

// NewGate constructs a gate around the verifier.
func NewGate(verifier *Verifier) *Gate {
	return &Gate{verifier: verifier}
}

// Authenticate extracts the bearer credential from an Authorization header
// value and verifies it.
func (g *Gate) Authenticate(ctx context.Context, header string) (*Credential, error) {
	raw, err := ParseBearer(header)
	if err != nil {
		return nil, err
	}
	return g.verifier.Verify(ctx, raw)
}

// Authorize succeeds when required is empty or contains the principal's role.
func (g *Gate) Authorize(principal Principal, required ...domain.Role) error {
	return Authorize(principal, required...)
}

// Authorize is the role membership test used by Gate.
func Authorize(principal Principal, required ...domain.Role) error {
	if len(required) == 0 {
		return nil
	}
	for _, role := range required {
		if principal.Role == role {
			return nil
		}
	}
	return &ForbiddenError{Role: principal.Role, Required: required}
}

// ParseBearer accepts exactly "Bearer <token>" where token is non-empty and
// contains no whitespace. Anything else is ErrMissingCredential.
func ParseBearer(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMissingCredential
	}
	token := header[len(bearerPrefix):]
	if token == "" || strings.ContainsAny(token, " \t\r\n") {
		return "", ErrMissingCredential
	}
	return token, nil
}
