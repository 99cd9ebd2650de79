package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase, gate Gate) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - no authentication required
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/search", handler.Search)
		publicJobs.GET("/company/:companyId", handler.ListByCompany)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	// Recruiter routes, ownership checked in the usecase
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", gate(authz.OpJobCreate), handler.Create)
		protectedJobs.PUT("/:id", gate(authz.OpJobUpdate), handler.Update)
		protectedJobs.DELETE("/:id", gate(authz.OpJobDelete), handler.Delete)
	}
}

type JobRequest struct {
	Title       string `json:"title" binding:"required,max=255,no_emoji"`
	Description string `json:"description" binding:"max=10000"`
	Location    string `json:"location" binding:"max=255"`
	SalaryRange string `json:"salary_range" binding:"max=100"`
}

func (r JobRequest) input() domain.JobInput {
	return domain.JobInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    optional(r.Location),
		SalaryRange: optional(r.SalaryRange),
	}
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Get every job posting, newest first
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job list", jobs)
}

// GetJobDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

// SearchJobs godoc
// @Summary      Search jobs
// @Description  Substring match on title or description, optionally narrowed by location
// @Tags         jobs
// @Produce      json
// @Param        keyword   query     string  false  "Keyword"
// @Param        location  query     string  false  "Location"
// @Success      200       {object}  response.Response
// @Router       /jobs/search [get]
func (h *JobHandler) Search(c *gin.Context) {
	jobs, err := h.jobUC.SearchJobs(c.Request.Context(), c.Query("keyword"), c.Query("location"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Search results", jobs)
}

// ListCompanyJobs godoc
// @Summary      List a company's jobs
// @Tags         jobs
// @Produce      json
// @Param        companyId  path      int  true  "Company ID"
// @Success      200        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /jobs/company/{companyId} [get]
func (h *JobHandler) ListByCompany(c *gin.Context) {
	companyID, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	jobs, err := h.jobUC.ListCompanyJobs(c.Request.Context(), companyID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company jobs", jobs)
}

// CreateJob godoc
// @Summary      Create a new job
// @Description  Create a job posting for the recruiter's company (Recruiter only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), who, req.input())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Overwrite a job posting owned by the recruiter's company
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int         true  "Job ID"
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), who, id, req.input())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Delete a job and its applications
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), who, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}
