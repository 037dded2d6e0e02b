package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/examhub/exam-service/internal/api/dto"
	"github.com/examhub/exam-service/internal/auth"
	"github.com/examhub/exam-service/internal/service"
	apperrors "github.com/examhub/exam-service/pkg/util"
)

// AuthHandler exposes login, logout and credential endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	issued, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewInvalidCredentials()
		}
		return apperrors.NewInternalError(err)
	}

	cred := issued.Credential
	return c.JSON(dto.LoginResponse{
		Credential: issued.Token,
		Principal:  cred.Principal(),
		UniqueID:   cred.ID,
		ExpiresAt:  cred.ExpiresAt.Unix(),
	})
}

// Logout handles POST /api/auth/logout. Without a credential it is a no-op.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	cred, ok := auth.CredentialFromContext(c)
	if !ok {
		return c.JSON(dto.AckResponse{OK: true})
	}
	if err := h.auth.Logout(c.UserContext(), cred); err != nil {
		return revocationError(err)
	}
	return c.JSON(dto.AckResponse{OK: true})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	cred, ok := auth.CredentialFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}
	return c.JSON(dto.MeResponse{
		Principal: cred.Principal(),
		UniqueID:  cred.ID,
		IssuedAt:  cred.IssuedAt.Unix(),
		ExpiresAt: cred.ExpiresAt.Unix(),
	})
}

// Revoke handles POST /api/auth/revocations.
func (h *AuthHandler) Revoke(c *fiber.Ctx) error {
	actor, ok := auth.CredentialFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}

	var req dto.RevokeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Credential) == "" {
		return apperrors.NewValidationError("credential required", nil)
	}

	err := h.auth.RevokeCredential(c.UserContext(), actor.Principal(), strings.TrimSpace(req.Credential))
	switch {
	case err == nil:
		return c.JSON(dto.AckResponse{OK: true})
	case auth.IsUnauthenticated(err):
		return apperrors.NewValidationError("credential cannot be verified", nil)
	default:
		return revocationError(err)
	}
}

func revocationError(err error) error {
	if errors.Is(err, auth.ErrStoreUnavailable) {
		return apperrors.NewServiceUnavailable("revocation temporarily unavailable", err)
	}
	return apperrors.NewInternalError(err)
}
