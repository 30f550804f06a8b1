package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	{
		// Dashboard stats
		admin.GET("/stats", handler.GetStats)

		// User management
		admin.GET("/users", handler.ListUsers)
		admin.PATCH("/users/:id/role", handler.UpdateRole)
		admin.PATCH("/users/:id/disable", handler.SetDisabled)

		// Job moderation
		admin.GET("/jobs", handler.ListJobs)
		admin.PATCH("/jobs/:id/hide", handler.SetJobHidden)
	}
}

// GetStats godoc
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.AdminStats}
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Admin stats", stats)
}

// ListUsers godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Param        role       query  string  false  "Filter by role"
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  response.Response{data=[]domain.User}
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := pageParams(c)
	users, total, err := h.adminUC.ListUsers(c.Request.Context(), c.Query("role"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Users", users, page, pageSize, total)
}

// UpdateRole godoc
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "User ID"
// @Param        body  body      domain.UpdateRoleRequest  true  "Role"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/users/{id}/role [patch]
// @Security     BearerAuth
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	var req domain.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	if err := h.adminUC.UpdateUserRole(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("id"), req.Role); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User role updated", nil)
}

// SetDisabled godoc
// @Summary      Disable or enable a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "User ID"
// @Param        body  body      domain.SetDisabledRequest  true  "Disabled flag"
// @Success      200   {object}  response.Response
// @Router       /admin/users/{id}/disable [patch]
// @Security     BearerAuth
func (h *AdminHandler) SetDisabled(c *gin.Context) {
	var req domain.SetDisabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	if err := h.adminUC.SetUserDisabled(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("id"), req.Disabled); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated", nil)
}

// ListJobs godoc
// @Summary      List all jobs
// @Tags         admin
// @Produce      json
// @Param        status     query  string  false  "draft, active or closed"
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Router       /admin/jobs [get]
// @Security     BearerAuth
func (h *AdminHandler) ListJobs(c *gin.Context) {
	status := domain.JobStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.Error(apperror.BadRequest("Invalid status filter"))
		return
	}

	page, pageSize := pageParams(c)
	jobs, total, err := h.adminUC.ListJobs(c.Request.Context(), status, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Jobs", jobs, page, pageSize, total)
}

// SetJobHidden godoc
// @Summary      Hide or unhide a job
// @Description  Hidden jobs disappear from public listings.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Job ID"
// @Param        body  body      domain.SetHiddenRequest  true  "Hidden flag"
// @Success      200   {object}  response.Response
// @Router       /admin/jobs/{id}/hide [patch]
// @Security     BearerAuth
func (h *AdminHandler) SetJobHidden(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.SetHiddenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	if err := h.adminUC.SetJobHidden(c.Request.Context(), id, req.Hidden); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job visibility updated", nil)
}
