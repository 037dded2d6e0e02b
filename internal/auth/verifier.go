package auth

import (
	"context"
	"fmt"
	"time"
)

// RevocationChecker answers whether a credential id was revoked early.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Verifier validates presented credentials against the codec and the
// revocation store.
type Verifier struct {
	codec       *Codec
	revocations RevocationChecker
	timeout     time.Duration
}

// NewVerifier builds a verifier. timeout bounds each revocation lookup.
func NewVerifier(codec *Codec, revocations RevocationChecker, timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &Verifier{codec: codec, revocations: revocations, timeout: timeout}
}

// Verify decodes raw and checks that its jti has not been revoked.
// Store failures surface as ErrStoreUnavailable; the credential is never
// assumed live when the store cannot answer.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Credential, error) {
	cred, err := v.codec.Decode(raw)
	if err != nil {
		return nil, err
	}

	lookupCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	revoked, err := v.revocations.IsRevoked(lookupCtx, cred.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if revoked {
		return nil, ErrRevoked
	}
	return cred, nil
}

// Decode exposes signature and expiry checks without the revocation lookup.
func (v *Verifier) Decode(raw string) (*Credential, error) {
	return v.codec.Decode(raw)
}
