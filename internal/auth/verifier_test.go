package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examhub/exam-service/internal/domain"
)

type stubRevocations struct {
	revoked map[string]bool
	err     error
	block   bool
	calls   []string
}

func (s *stubRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	s.calls = append(s.calls, jti)
	if s.block {
		<-ctx.Done()
		return false, ctx.Err()
	}
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[jti], nil
}

func issueForTest(t *testing.T, codec *Codec, role domain.Role) *IssuedCredential {
	t.Helper()
	issued, err := NewIssuer(codec, time.Hour).Issue("u1", role)
	require.NoError(t, err)
	return issued
}

func TestVerifyAcceptsLiveCredential(t *testing.T) {
	codec := newTestCodec(t, newFakeClock())
	store := &stubRevocations{}
	verifier := NewVerifier(codec, store, time.Second)
	issued := issueForTest(t, codec, domain.RoleStudent)

	cred, err := verifier.Verify(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, Principal{SubjectID: "u1", Role: domain.RoleStudent}, cred.Principal())
	assert.Equal(t, issued.Credential.ID, cred.ID)
	assert.Equal(t, []string{issued.Credential.ID}, store.calls)
}

func TestVerifyRejectsRevokedCredential(t *testing.T) {
	codec := newTestCodec(t, newFakeClock())
	issued := issueForTest(t, codec, domain.RoleStudent)
	store := &stubRevocations{revoked: map[string]bool{issued.Credential.ID: true}}

	_, err := NewVerifier(codec, store, time.Second).Verify(context.Background(), issued.Token)
	assert.ErrorIs(t, err, ErrRevoked)
}

func TestVerifyFailsClosedOnStoreError(t *testing.T) {
	codec := newTestCodec(t, newFakeClock())
	issued := issueForTest(t, codec, domain.RoleAdmin)
	cause := errors.New("connection refused")

	_, err := NewVerifier(codec, &stubRevocations{err: cause}, time.Second).Verify(context.Background(), issued.Token)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrRevoked)
	assert.False(t, IsUnauthenticated(err))
}

func TestVerifyBoundsStoreLookup(t *testing.T) {
	codec := newTestCodec(t, newFakeClock())
	issued := issueForTest(t, codec, domain.RoleAdmin)
	verifier := NewVerifier(codec, &stubRevocations{block: true}, 20*time.Millisecond)

	start := time.Now()
	_, err := verifier.Verify(context.Background(), issued.Token)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestVerifySkipsStoreForUndecodableCredential(t *testing.T) {
	store := &stubRevocations{}
	verifier := NewVerifier(newTestCodec(t, newFakeClock()), store, time.Second)

	_, err := verifier.Verify(context.Background(), "not-a-credential")
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Empty(t, store.calls)
}

func TestVerifyReportsExpiryBeforeRevocation(t *testing.T) {
	clock := newFakeClock()
	codec := newTestCodec(t, clock)
	issued := issueForTest(t, codec, domain.RoleTeacher)
	store := &stubRevocations{revoked: map[string]bool{issued.Credential.ID: true}}

	clock.Advance(2 * time.Hour)
	_, err := NewVerifier(codec, store, time.Second).Verify(context.Background(), issued.Token)
	assert.ErrorIs(t, err, ErrExpired)
	assert.Empty(t, store.calls)
}
