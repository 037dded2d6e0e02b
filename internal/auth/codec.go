package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/examhub/exam-service/internal/domain"
)

// Credential is the verified content of a bearer token.
type Credential struct {
	SubjectID string
	Role      domain.Role
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Principal returns the identity view of the credential.
func (c *Credential) Principal() Principal {
	return Principal{SubjectID: c.SubjectID, Role: c.Role}
}

// Principal represents the authenticated caller.
type Principal struct {
	SubjectID string      `json:"subjectId"`
	Role      domain.Role `json:"role"`
}

// claims is the JWT payload. Field order fixes the serialized key order.
type claims struct {
	Subject   string           `json:"sub"`
	Role      domain.Role      `json:"role"`
	ID        string           `json:"jti"`
	IssuedAt  *jwt.NumericDate `json:"iat"`
	ExpiresAt *jwt.NumericDate `json:"exp"`
}

func (c *claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt, nil }
func (c *claims) GetIssuedAt() (*jwt.NumericDate, error)       { return c.IssuedAt, nil }
func (c *claims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (c *claims) GetIssuer() (string, error)                   { return "", nil }
func (c *claims) GetSubject() (string, error)                  { return c.Subject, nil }
func (c *claims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

// Validate runs after the signature has been checked.
func (c *claims) Validate() error {
	if c.Subject == "" {
		return errors.New("sub claim is empty")
	}
	if c.ID == "" {
		return errors.New("jti claim is empty")
	}
	if c.IssuedAt == nil {
		return errors.New("iat claim is missing")
	}
	if !c.Role.Valid() {
		return errors.New("role claim is invalid")
	}
	return nil
}

// Codec signs and parses HS256 credentials with a process-wide secret.
// It is safe for concurrent use.
type Codec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// CodecOption customizes a Codec.
type CodecOption func(*Codec)

// WithClock overrides the time source used for expiry checks and issuance.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec builds a codec around the signing secret.
func NewCodec(secret string, opts ...CodecOption) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("signing secret is empty")
	}
	c := &Codec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

// Encode signs the credential into its three-segment wire form.
func (c *Codec) Encode(cred Credential) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Subject:   cred.SubjectID,
		Role:      cred.Role,
		ID:        cred.ID,
		IssuedAt:  jwt.NewNumericDate(cred.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(cred.ExpiresAt),
	})
	return token.SignedString(c.secret)
}

// Decode parses and validates a wire credential. It returns ErrMalformed,
// ErrBadSignature or ErrExpired on failure; claims are only read after the
// signature matched.
func (c *Codec) Decode(raw string) (*Credential, error) {
	segments := strings.Split(raw, ".")
	if len(segments) != 3 || segments[0] == "" || segments[1] == "" {
		return nil, ErrMalformed
	}
	// An unreadable signature segment is a signature failure, not a
	// structural one: the header and payload may be perfectly intact.
	if _, err := base64.RawURLEncoding.Strict().DecodeString(segments[2]); err != nil {
		return nil, ErrBadSignature
	}

	var payload claims
	_, err := c.parser.ParseWithClaims(raw, &payload, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	return &Credential{
		SubjectID: payload.Subject,
		Role:      payload.Role,
		ID:        payload.ID,
		IssuedAt:  payload.IssuedAt.Time,
		ExpiresAt: payload.ExpiresAt.Time,
	}, nil
}

func (c *Codec) clock() time.Time {
	return c.now()
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}
