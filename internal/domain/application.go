package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

// Application status constants
const (
	ApplicationStatusPending   ApplicationStatus = "PENDING"
	ApplicationStatusInterview ApplicationStatus = "INTERVIEW"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusInterview, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application is one job seeker's submission for one job.
type Application struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	JobID     int64             `json:"job_id"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"applied_at"`

	// Joined data for list responses
	Applicant string `json:"applicant,omitempty"`
	JobTitle  string `json:"job_title,omitempty"`
	// RecruiterUserID owns the job's company (application -> job -> company -> user)
	RecruiterUserID int64 `json:"-"`
}

// ApplicationFilter narrows a recruiter's listing.
type ApplicationFilter struct {
	JobID  *int64
	Status *ApplicationStatus
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	ListByUserID(ctx context.Context, userID int64) ([]Application, error)
	ListByJobID(ctx context.Context, jobID int64, status *ApplicationStatus) ([]Application, error)
	// ListByRecruiter returns applications for every job of the recruiter's company.
	ListByRecruiter(ctx context.Context, recruiterID int64, status *ApplicationStatus) ([]Application, error)
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus) error
}

type ApplicationUsecase interface {
	ListApplications(ctx context.Context, who Identity, filter ApplicationFilter) ([]Application, error)
	Apply(ctx context.Context, who Identity, jobID int64) (*Application, error)
	UpdateStatus(ctx context.Context, who Identity, id int64, status ApplicationStatus) (*Application, error)
	// ExportApplications renders the recruiter's listing as an xlsx workbook and returns it with a file name.
	ExportApplications(ctx context.Context, who Identity, filter ApplicationFilter) ([]byte, string, error)
}
