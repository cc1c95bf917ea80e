package repository

import (
	"context"

	authdomain "cinetrack-backend/internal/auth/domain"
)

// TokenRepository persists service-issued refresh tokens.
type TokenRepository interface {
	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteRefreshTokensByUser(userID string) error
}

// IdentityVerifier validates an ID token issued by the external auth
// provider and returns the identity it carries.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*authdomain.Identity, error)
}
