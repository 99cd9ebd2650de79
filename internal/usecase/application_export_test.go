package usecase_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/usecase"
)

func TestExportApplications(t *testing.T) {
	ctx := context.Background()
	apps := new(MockApplicationRepo)
	uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo), nil)

	applied := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	apps.On("ListByRecruiter", ctx, recruiterRita.UserID, (*domain.ApplicationStatus)(nil)).Return([]domain.Application{
		{ID: 1, JobID: 10, JobTitle: "Go Dev", Applicant: "alice", Status: domain.ApplicationStatusPending, AppliedAt: applied},
		{ID: 2, JobID: 10, JobTitle: "Go Dev", Applicant: "bob", Status: domain.ApplicationStatusRejected, AppliedAt: applied},
	}, nil)

	data, filename, err := uc.ExportApplications(ctx, recruiterRita, domain.ApplicationFilter{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "applications_"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "APPLICANT", rows[0][3])
	assert.Equal(t, []string{"1", "10", "Go Dev", "alice", "PENDING", "2024-03-01T09:30:00Z"}, rows[1])
	assert.Equal(t, "REJECTED", rows[2][4])
}

func TestExportApplications_JobSeekerDenied(t *testing.T) {
	apps := new(MockApplicationRepo)
	uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo), nil)

	_, _, err := uc.ExportApplications(context.Background(), seekerAlice, domain.ApplicationFilter{})
	assert.Equal(t, http.StatusForbidden, codeOf(t, err))
	apps.AssertNotCalled(t, "ListByUserID", mock.Anything, mock.Anything)
}
