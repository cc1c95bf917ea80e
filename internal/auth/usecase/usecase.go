package usecase

import (
	"context"

	authdomain "cinetrack-backend/internal/auth/domain"
	authdto "cinetrack-backend/internal/auth/dto"
)

// AuthUsecase exchanges provider ID tokens for service sessions and
// publishes identity changes on the bus.
type AuthUsecase interface {
	CreateSession(ctx context.Context, idToken string) (*authdto.TokenResponse, error)
	RefreshSession(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.Identity, error)
	Bus() *IdentityBus
}
