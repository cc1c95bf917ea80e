package usecase

import (
	"context"
	"errors"
	"fmt"

	profiledomain "cinetrack-backend/internal/profile/domain"
	profilerepo "cinetrack-backend/internal/profile/repository"

	"github.com/charmbracelet/log"
)

var (
	// ErrUnauthenticated is returned when a mutation is attempted with no
	// active identity. The write is refused before reaching the store.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrMutationFailed wraps store rejections (permission, network,
	// conflict). Mutations are never retried automatically.
	ErrMutationFailed = errors.New("bookmark mutation failed")

	ErrInvalidMediaKind = errors.New("media kind must be movie or tv")
)

// IsBookmarked reports whether some element of bookmarks matches the
// candidate id and media kind. Descriptive fields do not participate.
func IsBookmarked(bookmarks []profiledomain.Bookmark, id, mediaKind string) bool {
	for _, b := range bookmarks {
		if b.ID == id && b.Type == mediaKind {
			return true
		}
	}
	return false
}

// BookmarkUsecase toggles membership of titles in the user's bookmark
// collection and removes selected subsets in one batch.
type BookmarkUsecase interface {
	List(ctx context.Context, uid string) ([]profiledomain.Bookmark, error)
	Toggle(ctx context.Context, uid string, bookmark profiledomain.Bookmark, currentlyBookmarked bool) error
	RemoveMany(ctx context.Context, uid string, bookmarks []profiledomain.Bookmark) error
}

// bookmarkUsecase implements BookmarkUsecase interface
type bookmarkUsecase struct {
	store  profilerepo.Store
	logger *log.Logger
}

// NewBookmarkUsecase creates a new instance of bookmarkUsecase
func NewBookmarkUsecase(store profilerepo.Store, logger *log.Logger) BookmarkUsecase {
	return &bookmarkUsecase{
		store:  store,
		logger: logger,
	}
}

func (u *bookmarkUsecase) List(ctx context.Context, uid string) ([]profiledomain.Bookmark, error) {
	if uid == "" {
		return nil, ErrUnauthenticated
	}

	profile, err := u.store.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return []profiledomain.Bookmark{}, nil
	}
	if profile.Bookmarks == nil {
		return []profiledomain.Bookmark{}, nil
	}
	return profile.Bookmarks, nil
}

// Toggle adds or removes one bookmark. There is no read-then-write step:
// the store's set-union and exact-value-remove primitives keep the
// collection duplicate-free under concurrent edits from other devices.
func (u *bookmarkUsecase) Toggle(ctx context.Context, uid string, bookmark profiledomain.Bookmark, currentlyBookmarked bool) error {
	if uid == "" {
		return ErrUnauthenticated
	}
	if bookmark.Type != profiledomain.MediaKindMovie && bookmark.Type != profiledomain.MediaKindTV {
		return ErrInvalidMediaKind
	}

	var err error
	if currentlyBookmarked {
		err = u.store.RemoveBookmark(ctx, uid, bookmark)
	} else {
		err = u.store.AddBookmark(ctx, uid, bookmark)
	}
	if err != nil {
		u.logger.Error("bookmark toggle failed", "uid", uid, "type", bookmark.Type, "id", bookmark.ID, "err", err)
		return fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}
	return nil
}

// RemoveMany removes all selected bookmarks in a single batched mutation.
// The error is only returned after the mutation settles, so callers can
// keep their selection for retry on failure.
func (u *bookmarkUsecase) RemoveMany(ctx context.Context, uid string, bookmarks []profiledomain.Bookmark) error {
	if uid == "" {
		return ErrUnauthenticated
	}
	if len(bookmarks) == 0 {
		return nil
	}

	if err := u.store.RemoveBookmarks(ctx, uid, bookmarks); err != nil {
		u.logger.Error("bookmark batch removal failed", "uid", uid, "count", len(bookmarks), "err", err)
		return fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}
	return nil
}
