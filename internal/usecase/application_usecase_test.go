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

func TestListApplications_JobSeekerSeesOnlyOwn(t *testing.T) {
	ctx := context.Background()
	apps := new(MockApplicationRepo)
	uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo), nil)

	own := []domain.Application{
		{ID: 1, UserID: seekerAlice.UserID, JobID: 10},
		{ID: 4, UserID: seekerAlice.UserID, JobID: 11},
	}
	apps.On("ListByUserID", ctx, seekerAlice.UserID).Return(own, nil)

	jobID := int64(99)
	got, err := uc.ListApplications(ctx, seekerAlice, domain.ApplicationFilter{JobID: &jobID})
	require.NoError(t, err)
	assert.Equal(t, own, got)
	for _, a := range got {
		assert.Equal(t, seekerAlice.UserID, a.UserID)
	}
	apps.AssertNotCalled(t, "ListByJobID", mock.Anything, mock.Anything, mock.Anything)
}

func TestListApplications_RecruiterUnfiltered(t *testing.T) {
	ctx := context.Background()
	apps := new(MockApplicationRepo)
	uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo), nil)

	status := domain.ApplicationStatusInterview
	apps.On("ListByRecruiter", ctx, recruiterRita.UserID, &status).Return([]domain.Application{{ID: 1, JobID: 10}}, nil)

	got, err := uc.ListApplications(ctx, recruiterRita, domain.ApplicationFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListApplications_RecruiterForeignJob(t *testing.T) {
	ctx := context.Background()
	apps := new(MockApplicationRepo)
	jobs := new(MockJobRepo)
	uc := usecase.NewApplicationUsecase(apps, jobs, nil)

	jobs.On("GetByID", ctx, int64(10)).Return(ritaJob(), nil)

	jobID := int64(10)
	_, err := uc.ListApplications(ctx, recruiterRob, domain.ApplicationFilter{JobID: &jobID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, authz.ErrNotOwner))
	apps.AssertNotCalled(t, "ListByJobID", mock.Anything, mock.Anything, mock.Anything)
}

func TestListApplications_RecruiterOwnJob(t *testing.T) {
	ctx := context.Background()
	apps := new(MockApplicationRepo)
	jobs := new(MockJobRepo)
	uc := usecase.NewApplicationUsecase(apps, jobs, nil)

	jobs.On("GetByID", ctx, int64(10)).Return(ritaJob(), nil)
	apps.On("ListByJobID", ctx, int64(10), (*domain.ApplicationStatus)(nil)).Return([]domain.Application{{ID: 1}, {ID: 2}}, nil)

	jobID := int64(10)
	got, err := uc.ListApplications(ctx, recruiterRita, domain.ApplicationFilter{JobID: &jobID})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListApplications_InvalidStatusFilter(t *testing.T) {
	uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), nil)
	bogus := domain.ApplicationStatus("HIRED")

	_, err := uc.ListApplications(context.Background(), recruiterRita, domain.ApplicationFilter{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, codeOf(t, err))
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	apps := new(MockApplicationRepo)
	jobs := new(MockJobRepo)
	pub := new(MockPublisher)
	uc := usecase.NewApplicationUsecase(apps, jobs, pub)

	jobs.On("GetByID", ctx, int64(10)).Return(ritaJob(), nil)
	apps.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)
	pub.On("Publish", ctx, mock.MatchedBy(func(e domain.Event) bool { return e.Type == domain.EventApplicationSubmitted }))

	app, err := uc.Apply(ctx, seekerAlice, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.Equal(t, seekerAlice.UserID, app.UserID)
	assert.Equal(t, int64(10), app.JobID)

	// Second submission is not deduplicated
	_, err = uc.Apply(ctx, seekerAlice, 10)
	require.NoError(t, err)
	apps.AssertNumberOfCalls(t, "Create", 2)
}

func TestApply_UnknownJob(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobRepo)
	uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), jobs, nil)
	jobs.On("GetByID", ctx, int64(404)).Return(nil, domain.ErrNotFound)

	_, err := uc.Apply(ctx, seekerAlice, 404)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, codeOf(t, err))
}

func TestApply_JobDeletedBeforeInsert(t *testing.T) {
	ctx := context.Background()
	apps := new(MockApplicationRepo)
	jobs := new(MockJobRepo)
	pub := new(MockPublisher)
	uc := usecase.NewApplicationUsecase(apps, jobs, pub)

	jobs.On("GetByID", ctx, int64(10)).Return(ritaJob(), nil)
	apps.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(domain.ErrNotFound)

	_, err := uc.Apply(ctx, seekerAlice, 10)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, codeOf(t, err))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	apps := new(MockApplicationRepo)
	pub := new(MockPublisher)
	uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo), pub)

	stored := &domain.Application{ID: 7, UserID: 1, JobID: 10, Status: domain.ApplicationStatusPending, RecruiterUserID: recruiterRita.UserID}
	apps.On("GetByID", ctx, int64(7)).Return(stored, nil)
	apps.On("UpdateStatus", ctx, int64(7), domain.ApplicationStatusInterview).Return(nil)
	pub.On("Publish", ctx, mock.MatchedBy(func(e domain.Event) bool { return e.Type == domain.EventApplicationStatusChanged })).Once()

	t.Run("owner moves status", func(t *testing.T) {
		app, err := uc.UpdateStatus(ctx, recruiterRita, 7, domain.ApplicationStatusInterview)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusInterview, app.Status)
	})

	t.Run("other recruiter rejected", func(t *testing.T) {
		_, err := uc.UpdateStatus(ctx, recruiterRob, 7, domain.ApplicationStatusRejected)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, codeOf(t, err))
		assert.True(t, errors.Is(err, authz.ErrNotOwner))
		apps.AssertNotCalled(t, "UpdateStatus", ctx, int64(7), domain.ApplicationStatusRejected)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := uc.UpdateStatus(ctx, recruiterRita, 7, "ACCEPTED")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, codeOf(t, err))
	})

	pub.AssertExpectations(t)
}
