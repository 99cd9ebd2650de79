package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
	"recruitment-platform/pkg/imaging"
)

const (
	MaxPictureBytes  = 5 << 20
	pictureDimension = 512
	pictureQuality   = 85
)

type profileUsecase struct {
	userRepo domain.UserRepository
	store    domain.ObjectStore
	now      func() time.Time
}

// NewProfileUsecase wires picture uploads. store may be nil when object
// storage is not configured; uploads then fail with 503.
func NewProfileUsecase(userRepo domain.UserRepository, store domain.ObjectStore) domain.ProfileUsecase {
	return &profileUsecase{userRepo: userRepo, store: store, now: time.Now}
}

func (uc *profileUsecase) UpdateProfilePicture(ctx context.Context, who domain.Identity, data []byte) (*domain.User, error) {
	if uc.store == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "File storage is not configured", nil)
	}
	if len(data) == 0 {
		return nil, apperror.BadRequest("File is required")
	}
	if len(data) > MaxPictureBytes {
		return nil, apperror.BadRequest("File too large. Maximum size is 5MB")
	}

	compressed, err := imaging.Compress(data, pictureDimension, pictureQuality)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			return nil, apperror.BadRequest("Invalid file type. Only JPG and PNG are allowed")
		}
		return nil, apperror.New(http.StatusBadRequest, "Could not read image", err)
	}

	key := fmt.Sprintf("profile-pictures/%d/%d.jpg", who.UserID, uc.now().UnixNano())
	url, err := uc.store.Put(ctx, key, "image/jpeg", compressed)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uc.userRepo.UpdateProfilePicture(ctx, who.UserID, url); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	user, err := uc.userRepo.GetByID(ctx, who.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}
