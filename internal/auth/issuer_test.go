package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examhub/exam-service/internal/domain"
)

func TestIssueSetsLifetimeAndRoundTrips(t *testing.T) {
	clock := newFakeClock()
	clock.Advance(750 * time.Millisecond)
	codec := newTestCodec(t, clock)
	issuer := NewIssuer(codec, 24*time.Hour)

	issued, err := issuer.Issue("u1", domain.RoleTeacher)
	require.NoError(t, err)

	cred := issued.Credential
	wantIssued := clock.Now().Truncate(time.Second)
	assert.Equal(t, "u1", cred.SubjectID)
	assert.Equal(t, domain.RoleTeacher, cred.Role)
	assert.NotEmpty(t, cred.ID)
	assert.True(t, wantIssued.Equal(cred.IssuedAt))
	assert.True(t, wantIssued.Add(24*time.Hour).Equal(cred.ExpiresAt))

	decoded, err := codec.Decode(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, cred.ID, decoded.ID)
	assert.True(t, cred.ExpiresAt.Equal(decoded.ExpiresAt))
}

func TestIssueForCustomLifetime(t *testing.T) {
	clock := newFakeClock()
	issuer := NewIssuer(newTestCodec(t, clock), time.Hour)

	issued, err := issuer.IssueFor("u1", domain.RoleStudent, 86400*time.Second)
	require.NoError(t, err)
	assert.True(t, clock.Now().Add(24*time.Hour).Equal(issued.Credential.ExpiresAt))
}

func TestIssueNeverRepeatsJTI(t *testing.T) {
	issuer := NewIssuer(newTestCodec(t, newFakeClock()), time.Hour)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		issued, err := issuer.Issue("u1", domain.RoleStudent)
		require.NoError(t, err)
		_, dup := seen[issued.Credential.ID]
		require.False(t, dup, "duplicate jti %s", issued.Credential.ID)
		seen[issued.Credential.ID] = struct{}{}
	}
}

func TestIssueRejectsInvalidInput(t *testing.T) {
	issuer := NewIssuer(newTestCodec(t, newFakeClock()), time.Hour)

	_, err := issuer.Issue("", domain.RoleAdmin)
	assert.Error(t, err)

	_, err = issuer.Issue("u1", domain.Role("ROOT"))
	assert.Error(t, err)

	_, err = issuer.IssueFor("u1", domain.RoleAdmin, 0)
	assert.Error(t, err)
}

func TestNewIssuerDefaultsLifetime(t *testing.T) {
	clock := newFakeClock()
	issuer := NewIssuer(newTestCodec(t, clock), 0)

	issued, err := issuer.Issue("u1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, issued.Credential.ExpiresAt.Sub(issued.Credential.IssuedAt))
}
