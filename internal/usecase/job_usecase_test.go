package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/usecase"
)

var (
	recruiterRita = domain.Identity{UserID: 2, Username: "rita", Role: domain.RoleRecruiter}
	recruiterRob  = domain.Identity{UserID: 3, Username: "rob", Role: domain.RoleRecruiter}
	seekerAlice   = domain.Identity{UserID: 1, Username: "alice", Role: domain.RoleJobSeeker}
)

func ritaJob() *domain.Job {
	return &domain.Job{ID: 10, CompanyID: 5, Title: "Backend Engineer", Description: "Go services", OwnerUserID: recruiterRita.UserID}
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobRepo)
	companies := new(MockCompanyRepo)
	pub := new(MockPublisher)
	uc := usecase.NewJobUsecase(jobs, companies, pub)

	companies.On("GetByUserID", ctx, recruiterRita.UserID).Return(&domain.Company{ID: 5, UserID: 2, Name: "Acme"}, nil)
	jobs.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Job).ID = 10
	})
	pub.On("Publish", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventJobPosted && e.Key == "10"
	})).Once()

	job, err := uc.CreateJob(ctx, recruiterRita, domain.JobInput{Title: " Backend Engineer ", Description: "Go"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), job.CompanyID)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, recruiterRita.UserID, job.OwnerUserID)
	assert.False(t, job.CreatedAt.IsZero())
	pub.AssertExpectations(t)
}

func TestCreateJob_NoCompany(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobRepo)
	companies := new(MockCompanyRepo)
	uc := usecase.NewJobUsecase(jobs, companies, nil)

	companies.On("GetByUserID", ctx, recruiterRob.UserID).Return(nil, domain.ErrNotFound)

	_, err := uc.CreateJob(ctx, recruiterRob, domain.JobInput{Title: "Ops"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, codeOf(t, err))
	jobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestJobMutation_NonOwnerRejected(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobRepo)
	uc := usecase.NewJobUsecase(jobs, new(MockCompanyRepo), nil)
	jobs.On("GetByID", ctx, int64(10)).Return(ritaJob(), nil)

	t.Run("update", func(t *testing.T) {
		_, err := uc.UpdateJob(ctx, recruiterRob, 10, domain.JobInput{Title: "Hijacked"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, codeOf(t, err))
		assert.True(t, errors.Is(err, authz.ErrNotOwner))
	})

	t.Run("delete", func(t *testing.T) {
		err := uc.DeleteJob(ctx, recruiterRob, 10)
		require.Error(t, err)
		assert.True(t, errors.Is(err, authz.ErrNotOwner))
	})

	jobs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	jobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdateJob_Owner(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobRepo)
	uc := usecase.NewJobUsecase(jobs, new(MockCompanyRepo), nil)

	loc := "Remote"
	jobs.On("GetByID", ctx, int64(10)).Return(ritaJob(), nil)
	jobs.On("Update", ctx, mock.AnythingOfType("*domain.Job")).Return(nil)

	job, err := uc.UpdateJob(ctx, recruiterRita, 10, domain.JobInput{Title: "Senior Backend Engineer", Description: "Go", Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, "Remote", *job.Location)
	assert.Equal(t, int64(5), job.CompanyID)
}

func TestDeleteJob_Owner(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobRepo)
	pub := new(MockPublisher)
	uc := usecase.NewJobUsecase(jobs, new(MockCompanyRepo), pub)

	jobs.On("GetByID", ctx, int64(10)).Return(ritaJob(), nil)
	jobs.On("Delete", ctx, int64(10)).Return(nil)
	pub.On("Publish", ctx, mock.MatchedBy(func(e domain.Event) bool { return e.Type == domain.EventJobDeleted })).Once()

	require.NoError(t, uc.DeleteJob(ctx, recruiterRita, 10))
	pub.AssertExpectations(t)
}

func TestGetJob_NotFound(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobRepo)
	uc := usecase.NewJobUsecase(jobs, new(MockCompanyRepo), nil)
	jobs.On("GetByID", ctx, int64(77)).Return(nil, domain.ErrNotFound)

	_, err := uc.GetJob(ctx, 77)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, codeOf(t, err))
}

func TestSearchJobs_TrimsInput(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobRepo)
	uc := usecase.NewJobUsecase(jobs, new(MockCompanyRepo), nil)

	jobs.On("Search", ctx, "Backend", "").Return([]domain.Job{*ritaJob()}, nil)

	got, err := uc.SearchJobs(ctx, "  Backend ", " ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Backend Engineer", got[0].Title)
}

func TestListCompanyJobs(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobRepo)
	companies := new(MockCompanyRepo)
	uc := usecase.NewJobUsecase(jobs, companies, nil)

	companies.On("GetByID", ctx, int64(5)).Return(&domain.Company{ID: 5, UserID: 2, Name: "Acme"}, nil)
	companies.On("GetByID", ctx, int64(404)).Return(nil, domain.ErrNotFound)
	jobs.On("ListByCompanyID", ctx, int64(5)).Return([]domain.Job{*ritaJob()}, nil)

	got, err := uc.ListCompanyJobs(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = uc.ListCompanyJobs(ctx, 404)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, codeOf(t, err))
	jobs.AssertNumberOfCalls(t, "ListByCompanyID", 1)
}
