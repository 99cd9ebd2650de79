package domain

import (
	"context"
	"time"
)

// Company is a recruiter's company profile. Each recruiter owns at most one.
type Company struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"company_name"`
	Description *string   `json:"company_description"`
	Location    *string   `json:"location"`
	ContactInfo *string   `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CompanyRepository interface {
	List(ctx context.Context) ([]Company, error)
	GetByID(ctx context.Context, id int64) (*Company, error)
	GetByUserID(ctx context.Context, userID int64) (*Company, error)
	// Upsert writes the profile keyed by owner (one row per user_id).
	Upsert(ctx context.Context, company *Company) error
}

type CompanyUsecase interface {
	ListCompanies(ctx context.Context) ([]Company, error)
	GetCompany(ctx context.Context, id int64) (*Company, error)
	GetMyCompany(ctx context.Context, who Identity) (*Company, error)
	SaveCompany(ctx context.Context, who Identity, details *Company) (*Company, error)
}
