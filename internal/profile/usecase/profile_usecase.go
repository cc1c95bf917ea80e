package usecase

import (
	"context"
	"errors"

	"cinetrack-backend/internal/profile/domain"
	profiledto "cinetrack-backend/internal/profile/dto"
	"cinetrack-backend/internal/profile/repository"
)

var ErrNoFields = errors.New("no fields to update")

// ProfileUsecase reads and edits the user's profile document. Bookmark
// mutations go through the bookmark usecase instead.
type ProfileUsecase interface {
	Get(ctx context.Context, uid string) (*domain.Profile, error)
	Update(ctx context.Context, uid string, req profiledto.UpdateProfileRequest) error
}

// profileUsecase implements ProfileUsecase interface
type profileUsecase struct {
	store repository.Store
}

// NewProfileUsecase creates a new instance of profileUsecase
func NewProfileUsecase(store repository.Store) ProfileUsecase {
	return &profileUsecase{
		store: store,
	}
}

func (u *profileUsecase) Get(ctx context.Context, uid string) (*domain.Profile, error) {
	return u.store.GetProfile(ctx, uid)
}

func (u *profileUsecase) Update(ctx context.Context, uid string, req profiledto.UpdateProfileRequest) error {
	fields := make(map[string]interface{})
	if req.FirstName != nil {
		fields["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["lastName"] = *req.LastName
	}
	if req.PhotoURL != nil {
		fields["photoURL"] = *req.PhotoURL
	}
	if len(fields) == 0 {
		return ErrNoFields
	}

	return u.store.UpdateFields(ctx, uid, fields)
}
