package repository

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	authdomain "cinetrack-backend/internal/auth/domain"
)

// firebaseVerifier implements IdentityVerifier using the Firebase Admin SDK.
type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier creates a new instance of firebaseVerifier
func NewFirebaseVerifier(client *auth.Client) IdentityVerifier {
	return &firebaseVerifier{
		client: client,
	}
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*authdomain.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	identity := &authdomain.Identity{
		UID:      token.UID,
		Provider: token.Firebase.SignInProvider,
	}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.DisplayName = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.PhotoURL = picture
	}

	return identity, nil
}
