package v1_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recruitment-platform/internal/domain"
)

type MockAuthUC struct{ mock.Mock }

func (m *MockAuthUC) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthUC) Login(ctx context.Context, in domain.LoginInput) (*domain.LoginResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}
func (m *MockAuthUC) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockJobUC struct{ mock.Mock }

func (m *MockJobUC) ListJobs(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobUC) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobUC) SearchJobs(ctx context.Context, keyword, location string) ([]domain.Job, error) {
	args := m.Called(ctx, keyword, location)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobUC) ListCompanyJobs(ctx context.Context, companyID int64) ([]domain.Job, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobUC) CreateJob(ctx context.Context, who domain.Identity, in domain.JobInput) (*domain.Job, error) {
	args := m.Called(ctx, who, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobUC) UpdateJob(ctx context.Context, who domain.Identity, id int64, in domain.JobInput) (*domain.Job, error) {
	args := m.Called(ctx, who, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobUC) DeleteJob(ctx context.Context, who domain.Identity, id int64) error {
	return m.Called(ctx, who, id).Error(0)
}

type MockApplicationUC struct{ mock.Mock }

func (m *MockApplicationUC) ListApplications(ctx context.Context, who domain.Identity, filter domain.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, who, filter)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationUC) Apply(ctx context.Context, who domain.Identity, jobID int64) (*domain.Application, error) {
	args := m.Called(ctx, who, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationUC) UpdateStatus(ctx context.Context, who domain.Identity, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	args := m.Called(ctx, who, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationUC) ExportApplications(ctx context.Context, who domain.Identity, filter domain.ApplicationFilter) ([]byte, string, error) {
	args := m.Called(ctx, who, filter)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockProfileUC struct{ mock.Mock }

func (m *MockProfileUC) UpdateProfilePicture(ctx context.Context, who domain.Identity, data []byte) (*domain.User, error) {
	args := m.Called(ctx, who, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockCompanyUC struct{ mock.Mock }

func (m *MockCompanyUC) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Company), args.Error(1)
}
func (m *MockCompanyUC) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
func (m *MockCompanyUC) GetMyCompany(ctx context.Context, who domain.Identity) (*domain.Company, error) {
	args := m.Called(ctx, who)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
func (m *MockCompanyUC) SaveCompany(ctx context.Context, who domain.Identity, details *domain.Company) (*domain.Company, error) {
	args := m.Called(ctx, who, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

type MockResumeUC struct{ mock.Mock }

func (m *MockResumeUC) GetMyResume(ctx context.Context, who domain.Identity) (*domain.Resume, error) {
	args := m.Called(ctx, who)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}
func (m *MockResumeUC) SaveResume(ctx context.Context, who domain.Identity, details *domain.Resume) (*domain.Resume, error) {
	args := m.Called(ctx, who, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}
func (m *MockResumeUC) GetResumeByUserID(ctx context.Context, userID int64) (*domain.Resume, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

type MockMessageUC struct{ mock.Mock }

func (m *MockMessageUC) GetConversation(ctx context.Context, who domain.Identity, otherUserID int64) ([]domain.Message, error) {
	args := m.Called(ctx, who, otherUserID)
	return args.Get(0).([]domain.Message), args.Error(1)
}
func (m *MockMessageUC) Send(ctx context.Context, who domain.Identity, receiverID int64, content string) (*domain.Message, error) {
	args := m.Called(ctx, who, receiverID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}
func (m *MockMessageUC) ListConversations(ctx context.Context, who domain.Identity) ([]domain.Conversation, error) {
	args := m.Called(ctx, who)
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

type stubHealth struct {
	status  map[string]string
	healthy bool
}

func (s stubHealth) Check(context.Context) (map[string]string, bool) {
	return s.status, s.healthy
}
