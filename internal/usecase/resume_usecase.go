package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type resumeUsecase struct {
	resumeRepo domain.ResumeRepository
}

func NewResumeUsecase(resumeRepo domain.ResumeRepository) domain.ResumeUsecase {
	return &resumeUsecase{resumeRepo: resumeRepo}
}

// GetMyResume returns an empty resume owned by the caller until one is saved.
func (uc *resumeUsecase) GetMyResume(ctx context.Context, who domain.Identity) (*domain.Resume, error) {
	resume, err := uc.resumeRepo.GetByUserID(ctx, who.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Resume{UserID: who.UserID}, nil
		}
		return nil, apperror.Internal(err)
	}
	return resume, nil
}

func (uc *resumeUsecase) GetResumeByUserID(ctx context.Context, userID int64) (*domain.Resume, error) {
	resume, err := uc.resumeRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Resume not found")
		}
		return nil, apperror.Internal(err)
	}
	return resume, nil
}

// SaveResume follows the same overwrite-by-owner rule as company profiles.
func (uc *resumeUsecase) SaveResume(ctx context.Context, who domain.Identity, details *domain.Resume) (*domain.Resume, error) {
	if details == nil || strings.TrimSpace(details.Name) == "" {
		return nil, apperror.BadRequest("Name is required")
	}

	resume, err := uc.resumeRepo.GetByUserID(ctx, who.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resume = &domain.Resume{}
	case err != nil:
		return nil, apperror.Internal(err)
	}

	resume.UserID = who.UserID
	resume.Name = strings.TrimSpace(details.Name)
	resume.Education = details.Education
	resume.Experience = details.Experience
	resume.Skills = details.Skills
	resume.ContactInformation = details.ContactInformation
	resume.UpdatedAt = time.Now()

	if err := uc.resumeRepo.Upsert(ctx, resume); err != nil {
		return nil, apperror.Internal(err)
	}
	return resume, nil
}
