package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompanyProfileHandler struct {
	companyUC domain.CompanyProfileUsecase
}

func NewCompanyProfileHandler(public *gin.RouterGroup, protected *gin.RouterGroup, companyUC domain.CompanyProfileUsecase) {
	handler := &CompanyProfileHandler{companyUC: companyUC}

	public.GET("/companies/:id", handler.GetPublicProfile)

	recruiters := protected.Group("/recruiters", middleware.RequireRole(domain.RoleRecruiter))
	{
		recruiters.GET("/company", handler.GetMyProfile)
		recruiters.PUT("/company", handler.SaveProfile)
		recruiters.POST("/company/logo", middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()), handler.UploadLogo)
	}
}

// GetMyProfile godoc
// @Summary      Get my company profile
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CompanyProfile}
// @Failure      404  {object}  response.Response
// @Router       /recruiters/company [get]
// @Security     BearerAuth
func (h *CompanyProfileHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.companyUC.GetMyProfile(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company profile", profile)
}

// SaveProfile godoc
// @Summary      Create or update my company profile
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.CompanyProfileRequest  true  "Company profile"
// @Success      200      {object}  response.Response{data=domain.CompanyProfile}
// @Failure      400      {object}  response.Response
// @Router       /recruiters/company [put]
// @Security     BearerAuth
func (h *CompanyProfileHandler) SaveProfile(c *gin.Context) {
	var req domain.CompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	profile, err := h.companyUC.SaveProfile(c.Request.Context(), c.GetString(string(domain.KeyUserID)), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company profile saved", profile)
}

// UploadLogo godoc
// @Summary      Upload company logo
// @Description  PNG or JPEG. The image is scaled down to a square thumbnail.
// @Tags         companies
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Logo image"
// @Success      200   {object}  response.Response{data=domain.CompanyProfile}
// @Router       /recruiters/company/logo [post]
// @Security     BearerAuth
func (h *CompanyProfileHandler) UploadLogo(c *gin.Context) {
	filename, data, err := readUpload(c, "file")
	if err != nil {
		c.Error(err)
		return
	}

	profile, err := h.companyUC.UploadLogo(c.Request.Context(), c.GetString(string(domain.KeyUserID)), filename, data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Logo uploaded", profile)
}

// GetPublicProfile godoc
// @Summary      Get a company profile (public)
// @Tags         companies
// @Produce      json
// @Param        id   path      int  true  "Company profile ID"
// @Success      200  {object}  response.Response{data=domain.PublicCompanyProfile}
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [get]
func (h *CompanyProfileHandler) GetPublicProfile(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	profile, err := h.companyUC.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company profile", profile)
}
