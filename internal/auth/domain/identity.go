package domain

import "time"

// Identity is the authenticated-session record derived from the external
// auth provider. It is held in process memory only and never persisted;
// a nil Identity means signed out.
type Identity struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoURL"`
	Provider      string `json:"provider"` // e.g. "google.com", "password"
}

// RefreshToken is a service-issued refresh token persisted so sessions can
// be revoked on logout.
type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
