package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers sync on a group that only checks the token, since
// the local user row may not exist yet, and /me on the fully protected group.
func NewAuthHandler(tokenOnly *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	tokenOnly.POST("/auth/sync", handler.SyncProfile)
	protected.GET("/auth/me", handler.Me)
}

// SyncProfile godoc
// @Summary      Sync identity-provider user
// @Description  Creates the local user for the token subject on first login. Existing users keep their role.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.SyncUserRequest  false  "Requested role"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      401   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /auth/sync [post]
// @Security     BearerAuth
func (h *AuthHandler) SyncProfile(c *gin.Context) {
	var req domain.SyncUserRequest
	// An empty body is allowed and means the default role.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(bindError(err))
			return
		}
	}

	user, err := h.authUC.SyncUser(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.GetString(string(domain.KeyUserEmail)), req.Role)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User synced", user)
}

// Me godoc
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", user)
}
