package repository

import (
	"context"

	"cinetrack-backend/internal/profile/domain"
)

// Store is the profile-document boundary. GetProfile returns (nil, nil) when
// the document does not exist. Subscribe delivers every snapshot of the
// user's document, in commit order, until the returned cancel function is
// called; a missing document is delivered as a nil profile, not an error.
// Cancel blocks until no further callbacks will be invoked.
//
// AddBookmark has set-union semantics: adding a value that is already
// present leaves the collection unchanged. RemoveBookmark and
// RemoveBookmarks match exact values and no-op on absent entries.
type Store interface {
	GetProfile(ctx context.Context, uid string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, uid string, profile *domain.Profile) error
	Subscribe(ctx context.Context, uid string, onSnapshot func(*domain.Profile, error)) (cancel func())
	UpdateFields(ctx context.Context, uid string, fields map[string]interface{}) error
	AddBookmark(ctx context.Context, uid string, bookmark domain.Bookmark) error
	RemoveBookmark(ctx context.Context, uid string, bookmark domain.Bookmark) error
	RemoveBookmarks(ctx context.Context, uid string, bookmarks []domain.Bookmark) error
}
