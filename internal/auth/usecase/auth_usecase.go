package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	authdomain "cinetrack-backend/internal/auth/domain"
	authdto "cinetrack-backend/internal/auth/dto"
	"cinetrack-backend/internal/auth/repository"
	profiledomain "cinetrack-backend/internal/profile/domain"
	profilerepo "cinetrack-backend/internal/profile/repository"
	"cinetrack-backend/pkg/config"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	verifier     repository.IdentityVerifier
	tokenRepo    repository.TokenRepository
	profileStore profilerepo.Store
	bus          *IdentityBus
	config       *config.Config
	logger       *log.Logger
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(verifier repository.IdentityVerifier, tokenRepo repository.TokenRepository, profileStore profilerepo.Store, bus *IdentityBus, cfg *config.Config, logger *log.Logger) AuthUsecase {
	return &authUsecase{
		verifier:     verifier,
		tokenRepo:    tokenRepo,
		profileStore: profileStore,
		bus:          bus,
		config:       cfg,
		logger:       logger,
	}
}

func (u *authUsecase) Bus() *IdentityBus {
	return u.bus
}

// CreateSession verifies a provider ID token, ensures the user's profile
// document exists, issues service tokens and publishes a sign-in event.
func (u *authUsecase) CreateSession(ctx context.Context, idToken string) (*authdto.TokenResponse, error) {
	identity, err := u.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	if err := u.ensureProfile(ctx, identity); err != nil {
		// A session without a profile document still works; the
		// synchronizer degrades to empty name/photo fields.
		u.logger.Warn("could not ensure profile document", "uid", identity.UID, "err", err)
	}

	resp, err := u.generateTokens(identity)
	if err != nil {
		return nil, err
	}

	u.bus.Publish(identity.UID, identity)
	return resp, nil
}

func (u *authUsecase) ensureProfile(ctx context.Context, identity *authdomain.Identity) error {
	existing, err := u.profileStore.GetProfile(ctx, identity.UID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	firstName, lastName := splitName(identity.DisplayName)
	return u.profileStore.CreateProfile(ctx, identity.UID, &profiledomain.Profile{
		FirstName: firstName,
		LastName:  lastName,
		PhotoURL:  identity.PhotoURL,
		Bookmarks: []profiledomain.Bookmark{},
	})
}

// splitName splits a provider display name into first and last name fields.
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func (u *authUsecase) RefreshSession(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid refresh token")
	}

	stored, err := u.tokenRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("refresh token expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	identity, err := identityFromClaims(claims)
	if err != nil {
		return nil, err
	}

	return u.generateTokens(identity)
}

// Logout deletes the stored refresh token and publishes a sign-out event
// for the session's user.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	stored, err := u.tokenRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return err
	}

	if err := u.tokenRepo.DeleteRefreshToken(refreshToken); err != nil {
		return err
	}

	if stored != nil {
		u.bus.Publish(stored.UserID, nil)
	}
	return nil
}

func (u *authUsecase) generateTokens(identity *authdomain.Identity) (*authdto.TokenResponse, error) {
	accessToken, err := u.signToken(identity, u.config.JWTAccessExpiry, nil)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.signToken(identity, u.config.JWTRefreshExpiry, jwt.MapClaims{
		"token_id": uuid.New().String(),
	})
	if err != nil {
		return nil, err
	}

	refreshTokenEntity := &authdomain.RefreshToken{
		Token:     refreshToken,
		UserID:    identity.UID,
		ExpiresAt: time.Now().Add(u.config.JWTRefreshExpiry),
	}
	if err := u.tokenRepo.SaveRefreshToken(refreshTokenEntity); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         identity,
	}, nil
}

// signToken embeds the identity in the token claims so validation does not
// need a store lookup; the provider remains the source of truth at session
// creation.
func (u *authUsecase) signToken(identity *authdomain.Identity, expiry time.Duration, extra jwt.MapClaims) (string, error) {
	claims := jwt.MapClaims{
		"user_id":        identity.UID,
		"email":          identity.Email,
		"email_verified": identity.EmailVerified,
		"name":           identity.DisplayName,
		"picture":        identity.PhotoURL,
		"provider":       identity.Provider,
		"exp":            time.Now().Add(expiry).Unix(),
		"iat":            time.Now().Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return identityFromClaims(claims)
}

func identityFromClaims(claims jwt.MapClaims) (*authdomain.Identity, error) {
	uid, ok := claims["user_id"].(string)
	if !ok || uid == "" {
		return nil, errors.New("invalid token claims")
	}

	identity := &authdomain.Identity{UID: uid}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if name, ok := claims["name"].(string); ok {
		identity.DisplayName = name
	}
	if picture, ok := claims["picture"].(string); ok {
		identity.PhotoURL = picture
	}
	if provider, ok := claims["provider"].(string); ok {
		identity.Provider = provider
	}
	return identity, nil
}
