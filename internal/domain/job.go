package domain

import (
	"context"
	"time"
)

type Job struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"company_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    *string   `json:"location"`
	SalaryRange *string   `json:"salary_range"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined from companies
	CompanyName string `json:"company_name,omitempty"`
	OwnerUserID int64  `json:"-"`
}

// JobInput is the mutable part of a job posting.
type JobInput struct {
	Title       string
	Description string
	Location    *string
	SalaryRange *string
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	List(ctx context.Context) ([]Job, error)
	ListByCompanyID(ctx context.Context, companyID int64) ([]Job, error)
	// Search matches keyword against title or description, and location when non-empty.
	Search(ctx context.Context, keyword, location string) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	ListJobs(ctx context.Context) ([]Job, error)
	GetJob(ctx context.Context, id int64) (*Job, error)
	SearchJobs(ctx context.Context, keyword, location string) ([]Job, error)
	ListCompanyJobs(ctx context.Context, companyID int64) ([]Job, error)
	CreateJob(ctx context.Context, who Identity, in JobInput) (*Job, error)
	UpdateJob(ctx context.Context, who Identity, id int64, in JobInput) (*Job, error)
	DeleteJob(ctx context.Context, who Identity, id int64) error
}
