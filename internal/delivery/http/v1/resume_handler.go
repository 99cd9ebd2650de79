package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(r *gin.RouterGroup, resumeUC domain.ResumeUsecase, gate Gate) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	resumes := r.Group("/resume")
	{
		resumes.GET("", gate(authz.OpResumeReadOwn), handler.GetMine)
		resumes.POST("", gate(authz.OpResumeSave), handler.Save)
		resumes.GET("/:userId", gate(authz.OpResumeReadByUser), handler.GetByUser)
	}
}

type ResumeRequest struct {
	Name               string `json:"name" binding:"required,max=255"`
	Education          string `json:"education" binding:"max=10000"`
	Experience         string `json:"experience" binding:"max=10000"`
	Skills             string `json:"skills" binding:"max=10000"`
	ContactInformation string `json:"contact_information" binding:"max=255"`
}

// GetMyResume godoc
// @Summary      Get my resume
// @Tags         resumes
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Resume}
// @Failure      403  {object}  response.Response
// @Router       /resume [get]
// @Security     BearerAuth
func (h *ResumeHandler) GetMine(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	resume, err := h.resumeUC.GetMyResume(c.Request.Context(), who)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume", resume)
}

// SaveResume godoc
// @Summary      Create or update my resume
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        resume  body      ResumeRequest  true  "Resume details"
// @Success      200     {object}  response.Response{data=domain.Resume}
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /resume [post]
// @Security     BearerAuth
func (h *ResumeHandler) Save(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	var req ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resume, err := h.resumeUC.SaveResume(c.Request.Context(), who, &domain.Resume{
		Name:               req.Name,
		Education:          optional(req.Education),
		Experience:         optional(req.Experience),
		Skills:             optional(req.Skills),
		ContactInformation: optional(req.ContactInformation),
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume saved", resume)
}

// GetResumeByUser godoc
// @Summary      Get a job seeker's resume
// @Tags         resumes
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  response.Response{data=domain.Resume}
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /resume/{userId} [get]
// @Security     BearerAuth
func (h *ResumeHandler) GetByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	resume, err := h.resumeUC.GetResumeByUserID(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume", resume)
}
