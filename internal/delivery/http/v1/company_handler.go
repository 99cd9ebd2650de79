package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(public *gin.RouterGroup, protected *gin.RouterGroup, companyUC domain.CompanyUsecase, gate Gate) {
	handler := &CompanyHandler{companyUC: companyUC}

	// Registered before /:id so the static segment wins
	protected.GET("/companies/my-company", gate(authz.OpCompanyReadOwn), handler.GetMine)
	protected.POST("/companies", gate(authz.OpCompanySave), handler.Save)

	publicCompanies := public.Group("/companies")
	{
		publicCompanies.GET("", handler.List)
		publicCompanies.GET("/:id", handler.GetByID)
	}
}

type CompanyRequest struct {
	CompanyName        string `json:"company_name" binding:"required,max=255"`
	CompanyDescription string `json:"company_description" binding:"max=10000"`
	Location           string `json:"location" binding:"max=255"`
	ContactInfo        string `json:"contact_info" binding:"max=255"`
}

// ListCompanies godoc
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Company}
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyUC.ListCompanies(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company list", companies)
}

// GetCompany godoc
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  response.Response{data=domain.Company}
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [get]
func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	company, err := h.companyUC.GetCompany(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company details", company)
}

// GetMyCompany godoc
// @Summary      Get my company
// @Description  The recruiter's own company profile
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Company}
// @Failure      403  {object}  response.Response
// @Router       /companies/my-company [get]
// @Security     BearerAuth
func (h *CompanyHandler) GetMine(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	company, err := h.companyUC.GetMyCompany(c.Request.Context(), who)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company details", company)
}

// SaveCompany godoc
// @Summary      Create or update my company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company  body      CompanyRequest  true  "Company details"
// @Success      200      {object}  response.Response{data=domain.Company}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /companies [post]
// @Security     BearerAuth
func (h *CompanyHandler) Save(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	company, err := h.companyUC.SaveCompany(c.Request.Context(), who, &domain.Company{
		Name:        req.CompanyName,
		Description: optional(req.CompanyDescription),
		Location:    optional(req.Location),
		ContactInfo: optional(req.ContactInfo),
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company saved", company)
}
