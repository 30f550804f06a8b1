package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Public routes only ever return active, visible jobs
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("/public", handler.PublicList)
		publicJobs.GET("/public/:id", handler.PublicGetDetails)
	}

	recruiterOnly := middleware.RequireRole(domain.RoleRecruiter, domain.RoleAdmin)
	jobs := protected.Group("/jobs", recruiterOnly)
	{
		jobs.POST("", handler.Create)
		jobs.GET("/:id", handler.GetDetails)
		jobs.PUT("/:id", handler.Update)
		jobs.PATCH("/:id/status", handler.ChangeStatus)
		jobs.DELETE("/:id", handler.Delete)
	}

	protected.GET("/recruiters/jobs", recruiterOnly, handler.ListMine)
}

// Create godoc
// @Summary      Create a job
// @Description  Create a job posting. Creating it as active notifies matching candidates.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobRequest  true  "Job"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req domain.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// Update godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int                true  "Job ID"
// @Param        job  body      domain.JobRequest  true  "Job"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// ChangeStatus godoc
// @Summary      Change job status
// @Description  Move a job between draft, active and closed. Publishing a draft notifies matching candidates.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id      path      int                      true  "Job ID"
// @Param        status  body      domain.JobStatusRequest  true  "Status"
// @Success      200     {object}  response.Response{data=domain.Job}
// @Router       /jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *JobHandler) ChangeStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.JobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.ChangeStatus(c.Request.Context(), middleware.ActorFrom(c), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job status updated", job)
}

// Delete godoc
// @Summary      Delete a job
// @Tags         jobs
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.jobUC.DeleteJob(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// GetDetails godoc
// @Summary      Get one of my jobs
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

// ListMine godoc
// @Summary      List my jobs
// @Tags         jobs
// @Produce      json
// @Param        page       query  int  false  "Page number"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Router       /recruiters/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	page, pageSize := pageParams(c)
	jobs, total, err := h.jobUC.ListRecruiterJobs(c.Request.Context(), c.GetString(string(domain.KeyUserID)), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Recruiter job list", jobs, page, pageSize, total)
}

// PublicList godoc
// @Summary      List active jobs (public)
// @Tags         jobs
// @Produce      json
// @Param        category   query  string  false  "Category"
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Router       /jobs/public [get]
func (h *JobHandler) PublicList(c *gin.Context) {
	page, pageSize := pageParams(c)
	jobs, total, err := h.jobUC.ListPublicJobs(c.Request.Context(), c.Query("category"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Public job list", jobs, page, pageSize, total)
}

// PublicGetDetails godoc
// @Summary      Get active job details (public)
// @Description  Records one view per viewer per hour.
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/public/{id} [get]
func (h *JobHandler) PublicGetDetails(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	job, err := h.jobUC.GetPublicJob(c.Request.Context(), id, middleware.ViewerFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}
