package driven

import (
	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// TokenVerifier resolves a bearer token to identity claims. Token issuance
// belongs to the external identity collaborator; this side only verifies.
type TokenVerifier interface {
	// Verify validates the token signature and expiry. Returns
	// domain.ErrTokenExpired or domain.ErrTokenInvalid on failure.
	Verify(token string) (*domain.TokenClaims, error)
}
