package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/events"
	"recruitment-platform/pkg/apperror"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	publisher       domain.EventPublisher
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	publisher domain.EventPublisher,
) domain.ApplicationUsecase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		publisher:       publisher,
	}
}

// ListApplications scopes the result by role. A job seeker always gets their
// own applications and the filter is ignored. A recruiter gets applications
// for jobs their company owns, optionally narrowed to one job and a status.
func (uc *applicationUsecase) ListApplications(ctx context.Context, who domain.Identity, filter domain.ApplicationFilter) ([]domain.Application, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, invalidStatus()
	}

	switch who.Role {
	case domain.RoleJobSeeker:
		return uc.applicationRepo.ListByUserID(ctx, who.UserID)
	case domain.RoleRecruiter:
		if filter.JobID == nil {
			return uc.applicationRepo.ListByRecruiter(ctx, who.UserID, filter.Status)
		}
		job, err := uc.jobRepo.GetByID(ctx, *filter.JobID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.NotFound("Job not found")
			}
			return nil, apperror.Internal(err)
		}
		if err := authz.CheckJobOwner(who, job); err != nil {
			return nil, err
		}
		return uc.applicationRepo.ListByJobID(ctx, job.ID, filter.Status)
	}
	return nil, apperror.Forbidden("Access denied")
}

// Apply records a new PENDING application. Repeat submissions are not deduplicated.
func (uc *applicationUsecase) Apply(ctx context.Context, who domain.Identity, jobID int64) (*domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	app := &domain.Application{
		UserID:          who.UserID,
		JobID:           job.ID,
		Status:          domain.ApplicationStatusPending,
		AppliedAt:       time.Now(),
		Applicant:       who.Username,
		JobTitle:        job.Title,
		RecruiterUserID: job.OwnerUserID,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	uc.publisher.Publish(ctx, domain.Event{
		Type:    domain.EventApplicationSubmitted,
		Key:     strconv.FormatInt(job.ID, 10),
		Payload: app,
	})
	return app, nil
}

// UpdateStatus lets the recruiter owning the job move an application.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, who domain.Identity, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.Valid() {
		return nil, invalidStatus()
	}

	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	if err := authz.CheckApplicationRecruiter(who, app); err != nil {
		return nil, err
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	previous := app.Status
	app.Status = status
	uc.publisher.Publish(ctx, domain.Event{
		Type: domain.EventApplicationStatusChanged,
		Key:  strconv.FormatInt(app.JobID, 10),
		Payload: map[string]interface{}{
			"application_id": app.ID,
			"job_id":         app.JobID,
			"user_id":        app.UserID,
			"from":           previous,
			"to":             status,
		},
	})
	return app, nil
}

func invalidStatus() error {
	return apperror.BadRequest("Invalid status. Must be one of: PENDING, INTERVIEW, REJECTED")
}
