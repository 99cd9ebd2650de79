package v1_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recruitment-platform/config"
	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/delivery/http/response"
	v1 "recruitment-platform/internal/delivery/http/v1"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
	"recruitment-platform/pkg/token"
	"recruitment-platform/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.RegisterWithGin()
}

var (
	recruiter = domain.Identity{UserID: 7, Username: "rita", Role: domain.RoleRecruiter}
	seeker    = domain.Identity{UserID: 9, Username: "sam", Role: domain.RoleJobSeeker}
)

type fixture struct {
	t        *testing.T
	router   *gin.Engine
	tokens   *token.Service
	auth     *MockAuthUC
	jobs     *MockJobUC
	apps     *MockApplicationUC
	company  *MockCompanyUC
	resumes  *MockResumeUC
	messages *MockMessageUC
	profile  *MockProfileUC
	health   v1.HealthChecker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	secret := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("s", token.MinKeyBytes)))
	tokens, err := token.NewService(secret, time.Hour)
	require.NoError(t, err)

	f := &fixture{
		t:        t,
		tokens:   tokens,
		auth:     new(MockAuthUC),
		jobs:     new(MockJobUC),
		apps:     new(MockApplicationUC),
		company:  new(MockCompanyUC),
		resumes:  new(MockResumeUC),
		messages: new(MockMessageUC),
		profile:  new(MockProfileUC),
		health:   stubHealth{status: map[string]string{"status": "ok"}, healthy: true},
	}
	f.build()
	return f
}

func (f *fixture) build() {
	f.router = v1.NewRouter(v1.RouterDeps{
		AuthUC:        f.auth,
		JobUC:         f.jobs,
		ApplicationUC: f.apps,
		CompanyUC:     f.company,
		ResumeUC:      f.resumes,
		MessageUC:     f.messages,
		ProfileUC:     f.profile,
		HealthUC:      f.health,
		Tokens:        f.tokens,
		Config: &config.Config{
			AppEnv:                  "test",
			RateLimitWindowSeconds:  60,
			RateLimitLoginThreshold: 100,
		},
	})
}

func (f *fixture) do(method, path string, body []byte, who *domain.Identity, contentType string) *httptest.ResponseRecorder {
	f.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if who != nil {
		tok, err := f.tokens.Issue(who.Username, who.UserID, string(who.Role))
		require.NoError(f.t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) json(method, path string, payload interface{}, who *domain.Identity) *httptest.ResponseRecorder {
	f.t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(f.t, err)
	return f.do(method, path, body, who, "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthRoutes(t *testing.T) {
	t.Run("register created", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Register", mock.Anything, domain.RegisterInput{
			Username: "sam", Email: "sam@example.com", Password: "secret1", Role: domain.RoleJobSeeker,
		}).Return(&domain.User{ID: 9, Username: "sam", Email: "sam@example.com", Role: domain.RoleJobSeeker}, nil)

		w := f.json(http.MethodPost, "/api/auth/register", map[string]string{
			"username": "sam", "email": "sam@example.com", "password": "secret1", "role": "JOBSEEKER",
		}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.True(t, body.Success)
		assert.Equal(t, "User registered successfully!", body.Message)
		assert.NotContains(t, w.Body.String(), "secret1")
	})

	t.Run("register rejects unknown role", func(t *testing.T) {
		f := newFixture(t)
		w := f.json(http.MethodPost, "/api/auth/register", map[string]string{
			"username": "sam", "email": "sam@example.com", "password": "secret1", "role": "ADMIN",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Validation failed", decode(t, w).Message)
		f.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("register duplicate username", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Register", mock.Anything, mock.Anything).
			Return(nil, apperror.BadRequest("Error: Username is already taken!"))

		w := f.json(http.MethodPost, "/api/auth/register", map[string]string{
			"username": "sam", "email": "sam@example.com", "password": "secret1", "role": "RECRUITER",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Error: Username is already taken!", decode(t, w).Message)
	})

	t.Run("login passes request details", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Login", mock.Anything, mock.MatchedBy(func(in domain.LoginInput) bool {
			return in.Username == "sam" && in.Password == "secret1" && in.Path == "/api/auth/login" && in.RequestID != ""
		})).Return(&domain.LoginResult{Token: "tok", Type: "Bearer", ID: 9, Username: "sam", Roles: []string{"ROLE_JOBSEEKER"}}, nil)

		w := f.json(http.MethodPost, "/api/auth/login", map[string]string{"username": "sam", "password": "secret1"}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token":"tok"`)
		f.auth.AssertExpectations(t)
	})

	t.Run("login bad credentials", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Login", mock.Anything, mock.Anything).Return(nil, apperror.Unauthorized("Invalid username or password"))

		w := f.json(http.MethodPost, "/api/auth/login", map[string]string{"username": "sam", "password": "nope"}, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username or password", decode(t, w).Message)
	})

	t.Run("me requires token", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodGet, "/api/auth/me", nil, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me returns account", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("GetCurrentUser", mock.Anything, int64(9)).
			Return(&domain.User{ID: 9, Username: "sam", Password: "hash", Role: domain.RoleJobSeeker}, nil)

		w := f.do(http.MethodGet, "/api/auth/me", nil, &seeker, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "hash")
	})
}

func TestJobRoutes(t *testing.T) {
	t.Run("public list", func(t *testing.T) {
		f := newFixture(t)
		f.jobs.On("ListJobs", mock.Anything).Return([]domain.Job{{ID: 1, Title: "Go Dev"}}, nil)

		w := f.do(http.MethodGet, "/api/jobs", nil, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Go Dev")
	})

	t.Run("search is not captured by id route", func(t *testing.T) {
		f := newFixture(t)
		f.jobs.On("SearchJobs", mock.Anything, "go", "Berlin").Return([]domain.Job{}, nil)

		w := f.do(http.MethodGet, "/api/jobs/search?keyword=go&location=Berlin", nil, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		f.jobs.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodGet, "/api/jobs/abc", nil, nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.jobs.On("GetJob", mock.Anything, int64(42)).Return(nil, apperror.NotFound("Job not found"))

		w := f.do(http.MethodGet, "/api/jobs/42", nil, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("job seeker cannot create", func(t *testing.T) {
		f := newFixture(t)
		w := f.json(http.MethodPost, "/api/jobs", map[string]string{"title": "Go Dev"}, &seeker)

		assert.Equal(t, http.StatusForbidden, w.Code)
		f.jobs.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("recruiter creates", func(t *testing.T) {
		f := newFixture(t)
		loc := "Berlin"
		f.jobs.On("CreateJob", mock.Anything, recruiter, domain.JobInput{Title: "Go Dev", Description: "Build things", Location: &loc}).
			Return(&domain.Job{ID: 3, Title: "Go Dev"}, nil)

		w := f.json(http.MethodPost, "/api/jobs", map[string]string{
			"title": "Go Dev", "description": "Build things", "location": "Berlin",
		}, &recruiter)

		assert.Equal(t, http.StatusCreated, w.Code)
		f.jobs.AssertExpectations(t)
	})

	t.Run("ownership violation surfaces as bad request", func(t *testing.T) {
		f := newFixture(t)
		f.jobs.On("DeleteJob", mock.Anything, recruiter, int64(5)).
			Return(apperror.New(http.StatusBadRequest, "You can only manage your own company's jobs", authz.ErrNotOwner))

		w := f.do(http.MethodDelete, "/api/jobs/5", nil, &recruiter, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestApplicationRoutes(t *testing.T) {
	t.Run("apply requires job id", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodPost, "/api/applications", nil, &seeker, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("recruiter cannot apply", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodPost, "/api/applications?jobId=5", nil, &recruiter, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("seeker applies", func(t *testing.T) {
		f := newFixture(t)
		f.apps.On("Apply", mock.Anything, seeker, int64(5)).
			Return(&domain.Application{ID: 1, JobID: 5, UserID: 9, Status: domain.ApplicationStatusPending}, nil)

		w := f.do(http.MethodPost, "/api/applications?jobId=5", nil, &seeker, "")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "PENDING")
	})

	t.Run("recruiter filters by job and status", func(t *testing.T) {
		f := newFixture(t)
		jobID := int64(5)
		status := domain.ApplicationStatusInterview
		f.apps.On("ListApplications", mock.Anything, recruiter, domain.ApplicationFilter{JobID: &jobID, Status: &status}).
			Return([]domain.Application{}, nil)

		w := f.do(http.MethodGet, "/api/applications?jobId=5&status=INTERVIEW", nil, &recruiter, "")
		assert.Equal(t, http.StatusOK, w.Code)
		f.apps.AssertExpectations(t)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodPut, "/api/applications/1/status?status=HIRED", nil, &recruiter, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("export is recruiter only", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodGet, "/api/applications/export", nil, &seeker, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("export returns workbook", func(t *testing.T) {
		f := newFixture(t)
		status := domain.ApplicationStatusPending
		f.apps.On("ExportApplications", mock.Anything, recruiter, domain.ApplicationFilter{Status: &status}).
			Return([]byte("PK-xlsx"), "applications_x.xlsx", nil)

		w := f.do(http.MethodGet, "/api/applications/export?status=PENDING", nil, &recruiter, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "applications_x.xlsx")
		assert.Equal(t, "PK-xlsx", w.Body.String())
	})

	t.Run("update status", func(t *testing.T) {
		f := newFixture(t)
		f.apps.On("UpdateStatus", mock.Anything, recruiter, int64(1), domain.ApplicationStatusRejected).
			Return(&domain.Application{ID: 1, Status: domain.ApplicationStatusRejected}, nil)

		w := f.do(http.MethodPut, "/api/applications/1/status?status=REJECTED", nil, &recruiter, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCompanyAndResumeRoutes(t *testing.T) {
	t.Run("my-company is not parsed as id", func(t *testing.T) {
		f := newFixture(t)
		f.company.On("GetMyCompany", mock.Anything, recruiter).Return(&domain.Company{ID: 2, UserID: 7, Name: "Acme"}, nil)

		w := f.do(http.MethodGet, "/api/companies/my-company", nil, &recruiter, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"company_name":"Acme"`)
	})

	t.Run("public company by id", func(t *testing.T) {
		f := newFixture(t)
		f.company.On("GetCompany", mock.Anything, int64(2)).Return(&domain.Company{ID: 2, Name: "Acme"}, nil)

		w := f.do(http.MethodGet, "/api/companies/2", nil, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("seeker cannot save company", func(t *testing.T) {
		f := newFixture(t)
		w := f.json(http.MethodPost, "/api/companies", map[string]string{"company_name": "Acme"}, &seeker)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("seeker saves resume", func(t *testing.T) {
		f := newFixture(t)
		f.resumes.On("SaveResume", mock.Anything, seeker, mock.MatchedBy(func(r *domain.Resume) bool {
			return r.Name == "Sam" && r.Skills != nil && *r.Skills == "Go" && r.Education == nil
		})).Return(&domain.Resume{ID: 1, UserID: 9, Name: "Sam"}, nil)

		w := f.json(http.MethodPost, "/api/resume", map[string]string{"name": "Sam", "skills": "Go"}, &seeker)
		assert.Equal(t, http.StatusOK, w.Code)
		f.resumes.AssertExpectations(t)
	})

	t.Run("seeker reads own resume", func(t *testing.T) {
		f := newFixture(t)
		f.resumes.On("GetMyResume", mock.Anything, seeker).Return(&domain.Resume{ID: 1, UserID: 9, Name: "Sam"}, nil)

		w := f.do(http.MethodGet, "/api/resume", nil, &seeker, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"Sam"`)
	})

	t.Run("resume by user is recruiter only", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodGet, "/api/resume/9", nil, &seeker, "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		f.resumes.On("GetResumeByUserID", mock.Anything, int64(9)).Return(&domain.Resume{ID: 1, UserID: 9}, nil)
		w = f.do(http.MethodGet, "/api/resume/9", nil, &recruiter, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMessageRoutes(t *testing.T) {
	t.Run("send raw body", func(t *testing.T) {
		f := newFixture(t)
		f.messages.On("Send", mock.Anything, seeker, int64(7), "hello there").
			Return(&domain.Message{ID: 1, SenderID: 9, ReceiverID: 7, Content: "hello there"}, nil)

		w := f.do(http.MethodPost, "/api/messages/send/7", []byte("hello there"), &seeker, "text/plain")
		assert.Equal(t, http.StatusCreated, w.Code)
		f.messages.AssertExpectations(t)
	})

	t.Run("send json body", func(t *testing.T) {
		f := newFixture(t)
		f.messages.On("Send", mock.Anything, recruiter, int64(9), "hi").
			Return(&domain.Message{ID: 2, SenderID: 7, ReceiverID: 9, Content: "hi"}, nil)

		w := f.json(http.MethodPost, "/api/messages/send/9", map[string]string{"content": "hi"}, &recruiter)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("send malformed json", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodPost, "/api/messages/send/9", []byte("{"), &recruiter, "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conversation with unknown user", func(t *testing.T) {
		f := newFixture(t)
		f.messages.On("GetConversation", mock.Anything, seeker, int64(99)).
			Return([]domain.Message(nil), apperror.NotFound("User not found"))

		w := f.do(http.MethodGet, "/api/messages/with/99", nil, &seeker, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("conversations", func(t *testing.T) {
		f := newFixture(t)
		f.messages.On("ListConversations", mock.Anything, seeker).
			Return([]domain.Conversation{{UserID: 7, Username: "rita"}}, nil)

		w := f.do(http.MethodGet, "/api/messages/conversations", nil, &seeker, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "rita")
	})
}

func TestProfilePictureRoute(t *testing.T) {
	multipartBody := func(t *testing.T, field string, data []byte) ([]byte, string) {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile(field, "me.png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())
		return buf.Bytes(), mw.FormDataContentType()
	}

	t.Run("uploads", func(t *testing.T) {
		f := newFixture(t)
		url := "https://cdn.example.com/p.jpg"
		f.profile.On("UpdateProfilePicture", mock.Anything, seeker, []byte("pngdata")).
			Return(&domain.User{ID: 9, Username: "sam", ProfilePicture: &url}, nil)

		body, ct := multipartBody(t, "file", []byte("pngdata"))
		w := f.do(http.MethodPost, "/api/auth/me/picture", body, &seeker, ct)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), url)
	})

	t.Run("missing file", func(t *testing.T) {
		f := newFixture(t)
		body, ct := multipartBody(t, "other", []byte("x"))
		w := f.do(http.MethodPost, "/api/auth/me/picture", body, &seeker, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.profile.AssertNotCalled(t, "UpdateProfilePicture", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHealthRoute(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/api/health", nil, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	f.health = stubHealth{status: map[string]string{"status": "degraded", "database": "down"}, healthy: false}
	f.build()
	w = f.do(http.MethodGet, "/api/health", nil, nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"down"`)
}
