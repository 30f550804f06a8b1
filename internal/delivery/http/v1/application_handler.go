package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	candidates := protected.Group("/candidates", middleware.RequireRole(domain.RoleCandidate))
	{
		candidates.POST("/jobs/:jobId/apply", middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig()), handler.Apply)
		candidates.GET("/applications", handler.MyApplications)
	}

	recruiters := protected.Group("/recruiters", middleware.RequireRole(domain.RoleRecruiter, domain.RoleAdmin))
	{
		recruiters.GET("/jobs/:jobId/applications", handler.ListByJob)
		recruiters.GET("/jobs/:jobId/applications/export", handler.Export)
		recruiters.GET("/applications/:id", handler.GetDetail)
		recruiters.PATCH("/applications/:id/status", handler.UpdateStatus)
	}
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Requires an uploaded résumé. A candidate can apply to an active job once.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        jobId  path      int                 true   "Job ID"
// @Param        body   body      domain.ApplyRequest  false  "Cover letter"
// @Success      201    {object}  response.Response{data=domain.Application}
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /candidates/jobs/{jobId}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, err := paramID(c, "jobId")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.ApplyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(bindError(err))
			return
		}
	}

	app, err := h.applicationUC.ApplyToJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), jobID, req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// MyApplications godoc
// @Summary      List my applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /candidates/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	apps, err := h.applicationUC.GetMyApplications(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My applications", apps)
}

// ListByJob godoc
// @Summary      List applications for a job
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.Application}
// @Failure      403    {object}  response.Response
// @Router       /recruiters/jobs/{jobId}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	jobID, err := paramID(c, "jobId")
	if err != nil {
		c.Error(err)
		return
	}
	apps, err := h.applicationUC.ListByJobID(c.Request.Context(), middleware.ActorFrom(c), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job applications", apps)
}

// GetDetail godoc
// @Summary      Get application detail
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Router       /recruiters/applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetail(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	app, err := h.applicationUC.GetApplicationDetail(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application detail", app)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  The candidate receives an application_status notification.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      int                              true  "Application ID"
// @Param        status  body      domain.ApplicationStatusRequest  true  "Status"
// @Success      200     {object}  response.Response
// @Router       /recruiters/applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	if err := h.applicationUC.UpdateApplicationStatus(c.Request.Context(), middleware.ActorFrom(c), id, req.Status); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", nil)
}

// Export godoc
// @Summary      Export applications for a job
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        jobId   path   int     true   "Job ID"
// @Param        format  query  string  false  "xlsx or csv"  default(xlsx)
// @Success      200
// @Failure      400  {object}  response.Response
// @Router       /recruiters/jobs/{jobId}/applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Export(c *gin.Context) {
	jobID, err := paramID(c, "jobId")
	if err != nil {
		c.Error(err)
		return
	}

	file, err := h.applicationUC.ExportApplications(c.Request.Context(), middleware.ActorFrom(c), jobID, c.DefaultQuery("format", "xlsx"))
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
