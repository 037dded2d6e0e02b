package dto

import "github.com/examhub/exam-service/internal/auth"

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login. ExpiresAt is epoch seconds,
// matching the credential's exp claim.
type LoginResponse struct {
	Credential string         `json:"credential"`
	Principal  auth.Principal `json:"principal"`
	UniqueID   string         `json:"uniqueId"`
	ExpiresAt  int64          `json:"expiresAt"`
}

// MeResponse describes the caller's current credential.
type MeResponse struct {
	Principal auth.Principal `json:"principal"`
	UniqueID  string         `json:"uniqueId"`
	IssuedAt  int64          `json:"issuedAt"`
	ExpiresAt int64          `json:"expiresAt"`
}

// RevokeRequest payload for POST /api/auth/revocations.
type RevokeRequest struct {
	Credential string `json:"credential"`
}

// AckResponse acknowledges an operation with no other result.
type AckResponse struct {
	OK bool `json:"ok"`
}
