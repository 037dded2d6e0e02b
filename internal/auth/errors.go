package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/examhub/exam-service/internal/domain"
)

// Authentication failures. Callers outside the process see all of them as
// "unauthorized"; the distinction exists for logs and metrics.
var (
	ErrMissingCredential = errors.New("missing bearer credential")
	ErrMalformed         = errors.New("malformed credential")
	ErrBadSignature      = errors.New("credential signature mismatch")
	ErrExpired           = errors.New("credential expired")
	ErrRevoked           = errors.New("credential revoked")
)

// ErrStoreUnavailable means the revocation store could not be consulted.
// It is an infrastructure failure, never a statement about the credential.
var ErrStoreUnavailable = errors.New("revocation store unavailable")

// ErrForbidden matches any *ForbiddenError via errors.Is.
var ErrForbidden = errors.New("forbidden")

// ForbiddenError is returned when an authenticated principal lacks a required role.
type ForbiddenError struct {
	Role     domain.Role
	Required []domain.Role
}

func (e *ForbiddenError) Error() string {
	names := make([]string, len(e.Required))
	for i, r := range e.Required {
		names[i] = string(r)
	}
	return fmt.Sprintf("role %s not in [%s]", e.Role, strings.Join(names, ", "))
}

// Is lets errors.Is(err, ErrForbidden) match.
func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// IsUnauthenticated reports whether err is one of the credential failures
// that reject a request before authorization runs.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrMissingCredential) ||
		errors.Is(err, ErrMalformed) ||
		errors.Is(err, ErrBadSignature) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrRevoked)
}

// Reason returns a stable label for err, suitable for metrics and logs.
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrRevoked):
		return "revoked"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
