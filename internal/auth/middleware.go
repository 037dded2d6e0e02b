package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/examhub/exam-service/internal/domain"
	"github.com/examhub/exam-service/internal/observability"
	apperrors "github.com/examhub/exam-service/pkg/util"
)

const credentialKey = "auth_credential"

// Middleware adapts the Gate to fiber handlers.
type Middleware struct {
	gate    *Gate
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewMiddleware constructs middleware. metrics may be nil.
func NewMiddleware(gate *Gate, logger *zap.Logger, metrics *observability.Metrics) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{gate: gate, logger: logger, metrics: metrics}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	cred, err := m.gate.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	m.metrics.RecordAuthDecision(Reason(err))
	if err != nil {
		return m.reject(c, err)
	}
	c.Locals(credentialKey, cred)
	return c.Next()
}

// Optional authenticates only when an Authorization header is present.
// A present but invalid credential is still rejected.
func (m *Middleware) Optional(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		return c.Next()
	}
	return m.Handle(c)
}

// RequireRoles rejects principals whose role is not listed. No roles means
// any authenticated principal passes.
func (m *Middleware) RequireRoles(roles ...domain.Role) fiber.Handler {
	required := append([]domain.Role(nil), roles...)

	return func(c *fiber.Ctx) error {
		cred, ok := CredentialFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("unauthorized")
		}
		if err := m.gate.Authorize(cred.Principal(), required...); err != nil {
			m.metrics.RecordAuthDecision(Reason(err))
			m.logger.Debug("authorization denied",
				zap.String("subject_id", cred.SubjectID),
				zap.String("role", string(cred.Role)),
				zap.String("path", c.Path()))
			return apperrors.NewForbidden("insufficient role", map[string]any{
				"required_roles": required,
			})
		}
		return c.Next()
	}
}

func (m *Middleware) reject(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		m.logger.Error("revocation lookup failed", zap.String("path", c.Path()), zap.Error(err))
		return apperrors.NewServiceUnavailable("authentication temporarily unavailable", err)
	}
	m.logger.Debug("authentication rejected",
		zap.String("reason", Reason(err)),
		zap.String("path", c.Path()))
	return apperrors.NewUnauthorized("unauthorized")
}

// CredentialFromContext retrieves the verified credential stored by Handle.
func CredentialFromContext(c *fiber.Ctx) (*Credential, bool) {
	val := c.Locals(credentialKey)
	if val == nil {
		return nil, false
	}
	cred, ok := val.(*Credential)
	return cred, ok
}
