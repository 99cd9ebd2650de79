package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase, gate Gate) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := r.Group("/applications")
	{
		applications.GET("", gate(authz.OpApplicationList), handler.List)
		applications.GET("/export", gate(authz.OpApplicationExport), handler.Export)
		applications.POST("", gate(authz.OpApplicationSubmit), handler.Apply)
		applications.PUT("/:id/status", gate(authz.OpApplicationUpdateStatus), handler.UpdateStatus)
	}
}

func parseStatus(raw string) (*domain.ApplicationStatus, error) {
	if raw == "" {
		return nil, nil
	}
	status := domain.ApplicationStatus(raw)
	if !status.Valid() {
		return nil, apperror.BadRequest("Invalid status. Must be one of: PENDING, INTERVIEW, REJECTED")
	}
	return &status, nil
}

func parseFilter(c *gin.Context) (domain.ApplicationFilter, error) {
	var filter domain.ApplicationFilter
	if raw := c.Query("jobId"); raw != "" {
		jobID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, apperror.BadRequest("Invalid job ID")
		}
		filter.JobID = &jobID
	}
	status, err := parseStatus(c.Query("status"))
	if err != nil {
		return filter, err
	}
	filter.Status = status
	return filter, nil
}

// ListApplications godoc
// @Summary      List applications
// @Description  Job seekers see their own applications. Recruiters see applications to their company's jobs, optionally narrowed by job and status.
// @Tags         applications
// @Produce      json
// @Param        jobId   query     int     false  "Job ID (recruiter only)"
// @Param        status  query     string  false  "PENDING, INTERVIEW or REJECTED (recruiter only)"
// @Success      200     {object}  response.Response{data=[]domain.Application}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.applicationUC.ListApplications(c.Request.Context(), who, filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications", apps)
}

// ExportApplications godoc
// @Summary      Export applications
// @Description  Download the recruiter's applications as an Excel workbook, with the same filters as the listing
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        jobId   query     int     false  "Job ID"
// @Param        status  query     string  false  "PENDING, INTERVIEW or REJECTED"
// @Success      200     {file}    file
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Export(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	data, filename, err := h.applicationUC.ExportApplications(c.Request.Context(), who, filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Submit a PENDING application for a job (Job seeker only)
// @Tags         applications
// @Produce      json
// @Param        jobId  query     int  true  "Job ID"
// @Success      201    {object}  response.Response{data=domain.Application}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	jobID, err := strconv.ParseInt(c.Query("jobId"), 10, 64)
	if err != nil || jobID <= 0 {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), who, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// UpdateApplicationStatus godoc
// @Summary      Update application status
// @Description  Move an application to PENDING, INTERVIEW or REJECTED (Recruiter owning the job only)
// @Tags         applications
// @Produce      json
// @Param        id      path      int     true  "Application ID"
// @Param        status  query     string  true  "New status"
// @Success      200     {object}  response.Response{data=domain.Application}
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /applications/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status, err := parseStatus(c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}
	if status == nil {
		c.Error(apperror.BadRequest("status is required"))
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), who, id, *status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}
