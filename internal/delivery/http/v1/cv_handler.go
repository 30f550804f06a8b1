package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CVHandler struct {
	cvUC domain.CVUsecase
}

func NewCVHandler(protected *gin.RouterGroup, cvUC domain.CVUsecase) {
	handler := &CVHandler{cvUC: cvUC}

	admin := protected.Group("/admin/cvs", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.POST("", middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()), handler.Upload)
		admin.DELETE("/:id", handler.Delete)
	}

	cvs := protected.Group("/cvs", middleware.RequireRole(domain.RoleRecruiter, domain.RoleAdmin))
	{
		cvs.GET("", handler.List)
		cvs.GET("/:id/access", handler.CheckAccess)
		cvs.GET("/:id/download", handler.Download)
	}
}

// Upload godoc
// @Summary      Upload a CV to the repository
// @Tags         cvs
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "CV file"
// @Param        title     formData  string  true   "Title"
// @Param        category  formData  string  true   "Category"
// @Param        summary   formData  string  false  "Summary"
// @Success      201       {object}  response.Response{data=domain.CV}
// @Failure      400       {object}  response.Response
// @Router       /admin/cvs [post]
// @Security     BearerAuth
func (h *CVHandler) Upload(c *gin.Context) {
	var req domain.CVUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	filename, data, err := readUpload(c, "file")
	if err != nil {
		c.Error(err)
		return
	}

	cv, err := h.cvUC.Upload(c.Request.Context(), c.GetString(string(domain.KeyUserID)), &req, filename, data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "CV uploaded", cv)
}

// Delete godoc
// @Summary      Delete a CV
// @Tags         cvs
// @Param        id  path  int  true  "CV ID"
// @Success      200  {object}  response.Response
// @Router       /admin/cvs/{id} [delete]
// @Security     BearerAuth
func (h *CVHandler) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.cvUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV deleted", nil)
}

// List godoc
// @Summary      Browse the CV repository
// @Description  Newest first. CVs past the plan limit are hidden (Free) or returned locked without a summary.
// @Tags         cvs
// @Produce      json
// @Param        page       query  int  false  "Page number"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {object}  response.Response{data=domain.CVPage}
// @Router       /cvs [get]
// @Security     BearerAuth
func (h *CVHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	result, err := h.cvUC.List(c.Request.Context(), middleware.ActorFrom(c), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "CV list", result, page, pageSize, result.Total)
}

// CheckAccess godoc
// @Summary      Check whether my plan unlocks a CV
// @Tags         cvs
// @Produce      json
// @Param        id   path      int  true  "CV ID"
// @Success      200  {object}  response.Response{data=domain.CVAccess}
// @Failure      404  {object}  response.Response
// @Router       /cvs/{id}/access [get]
// @Security     BearerAuth
func (h *CVHandler) CheckAccess(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	access, err := h.cvUC.CheckAccess(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV access", access)
}

// Download godoc
// @Summary      Get a download link for a CV
// @Description  Returns a short-lived presigned URL and records a view. Locked CVs return 403.
// @Tags         cvs
// @Produce      json
// @Param        id   path      int  true  "CV ID"
// @Success      200  {object}  response.Response{data=domain.CVDownload}
// @Failure      403  {object}  response.Response
// @Router       /cvs/{id}/download [get]
// @Security     BearerAuth
func (h *CVHandler) Download(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	dl, err := h.cvUC.Download(c.Request.Context(), middleware.ActorFrom(c), id, middleware.ViewerFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV download", dl)
}
