package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/events"
	"recruitment-platform/pkg/apperror"
)

type jobUsecase struct {
	jobRepo     domain.JobRepository
	companyRepo domain.CompanyRepository
	publisher   domain.EventPublisher
}

func NewJobUsecase(jobRepo domain.JobRepository, companyRepo domain.CompanyRepository, publisher domain.EventPublisher) domain.JobUsecase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &jobUsecase{
		jobRepo:     jobRepo,
		companyRepo: companyRepo,
		publisher:   publisher,
	}
}

func (u *jobUsecase) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return u.jobRepo.List(ctx)
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	return u.loadJob(ctx, id)
}

// SearchJobs requires no filter; an empty keyword matches every job.
func (u *jobUsecase) SearchJobs(ctx context.Context, keyword, location string) ([]domain.Job, error) {
	return u.jobRepo.Search(ctx, strings.TrimSpace(keyword), strings.TrimSpace(location))
}

func (u *jobUsecase) ListCompanyJobs(ctx context.Context, companyID int64) ([]domain.Job, error) {
	if _, err := u.companyRepo.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Company not found")
		}
		return nil, apperror.Internal(err)
	}
	return u.jobRepo.ListByCompanyID(ctx, companyID)
}

func (u *jobUsecase) CreateJob(ctx context.Context, who domain.Identity, in domain.JobInput) (*domain.Job, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperror.BadRequest("Title is required")
	}

	company, err := u.companyRepo.GetByUserID(ctx, who.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("Create a company profile before posting jobs")
		}
		return nil, apperror.Internal(err)
	}

	job := &domain.Job{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		OwnerUserID: company.UserID,
		CreatedAt:   time.Now(),
	}
	applyJobInput(job, in)

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}

	u.publisher.Publish(ctx, domain.Event{
		Type:    domain.EventJobPosted,
		Key:     strconv.FormatInt(job.ID, 10),
		Payload: job,
	})
	return job, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, who domain.Identity, id int64, in domain.JobInput) (*domain.Job, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperror.BadRequest("Title is required")
	}

	job, err := u.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckJobOwner(who, job); err != nil {
		return nil, err
	}

	applyJobInput(job, in)
	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// DeleteJob removes the job; its applications go with it.
func (u *jobUsecase) DeleteJob(ctx context.Context, who domain.Identity, id int64) error {
	job, err := u.loadJob(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CheckJobOwner(who, job); err != nil {
		return err
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}

	u.publisher.Publish(ctx, domain.Event{
		Type:    domain.EventJobDeleted,
		Key:     strconv.FormatInt(id, 10),
		Payload: map[string]int64{"job_id": id, "company_id": job.CompanyID},
	})
	return nil
}

func (u *jobUsecase) loadJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func applyJobInput(job *domain.Job, in domain.JobInput) {
	job.Title = strings.TrimSpace(in.Title)
	job.Description = in.Description
	job.Location = in.Location
	job.SalaryRange = in.SalaryRange
}
