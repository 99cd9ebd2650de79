package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type companyUsecase struct {
	companyRepo domain.CompanyRepository
}

func NewCompanyUsecase(companyRepo domain.CompanyRepository) domain.CompanyUsecase {
	return &companyUsecase{companyRepo: companyRepo}
}

func (uc *companyUsecase) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return uc.companyRepo.List(ctx)
}

func (uc *companyUsecase) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Company not found")
		}
		return nil, apperror.Internal(err)
	}
	return company, nil
}

// GetMyCompany returns an empty profile owned by the caller until one is saved.
func (uc *companyUsecase) GetMyCompany(ctx context.Context, who domain.Identity) (*domain.Company, error) {
	company, err := uc.companyRepo.GetByUserID(ctx, who.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Company{UserID: who.UserID}, nil
		}
		return nil, apperror.Internal(err)
	}
	return company, nil
}

// SaveCompany overwrites the caller's profile, creating it on first save.
// Omitted fields are cleared, not preserved.
func (uc *companyUsecase) SaveCompany(ctx context.Context, who domain.Identity, details *domain.Company) (*domain.Company, error) {
	if details == nil || strings.TrimSpace(details.Name) == "" {
		return nil, apperror.BadRequest("Company name is required")
	}

	company, err := uc.companyRepo.GetByUserID(ctx, who.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		company = &domain.Company{CreatedAt: time.Now()}
	case err != nil:
		return nil, apperror.Internal(err)
	}

	// Force owner from identity (prevent IDOR)
	company.UserID = who.UserID
	company.Name = strings.TrimSpace(details.Name)
	company.Description = details.Description
	company.Location = details.Location
	company.ContactInfo = details.ContactInfo
	company.UpdatedAt = time.Now()

	if err := uc.companyRepo.Upsert(ctx, company); err != nil {
		return nil, apperror.Internal(err)
	}
	return company, nil
}
