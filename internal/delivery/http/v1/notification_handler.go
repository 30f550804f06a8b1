package v1

import (
	"net/http"
	"strconv"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

func NewNotificationHandler(protected *gin.RouterGroup, notificationUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notificationUC: notificationUC}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", handler.List)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.PATCH("/read-all", handler.MarkAllRead)
		notifications.PATCH("/:id/read", handler.MarkRead)
		notifications.DELETE("/:id", handler.Delete)
		notifications.DELETE("", handler.DeleteAll)
	}
}

// List godoc
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Param        unread     query  bool  false  "Only unread"
// @Param        page       query  int   false  "Page number"
// @Param        page_size  query  int   false  "Page size"
// @Success      200  {object}  response.Response{data=[]domain.Notification}
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))

	items, total, err := h.notificationUC.List(c.Request.Context(), c.GetString(string(domain.KeyUserID)), unreadOnly, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Notifications", items, page, pageSize, total)
}

// UnreadCount godoc
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /notifications/unread-count [get]
// @Security     BearerAuth
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationUC.UnreadCount(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Unread count", gin.H{"count": count})
}

// MarkRead godoc
// @Summary      Mark a notification read
// @Tags         notifications
// @Param        id  path  int  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /notifications/{id}/read [patch]
// @Security     BearerAuth
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.notificationUC.MarkRead(c.Request.Context(), c.GetString(string(domain.KeyUserID)), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead godoc
// @Summary      Mark all my notifications read
// @Tags         notifications
// @Success      200  {object}  response.Response
// @Router       /notifications/read-all [patch]
// @Security     BearerAuth
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.notificationUC.MarkAllRead(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notifications marked as read", gin.H{"updated": n})
}

// Delete godoc
// @Summary      Delete a notification
// @Tags         notifications
// @Param        id  path  int  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Router       /notifications/{id} [delete]
// @Security     BearerAuth
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.notificationUC.Delete(c.Request.Context(), c.GetString(string(domain.KeyUserID)), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notification deleted", nil)
}

// DeleteAll godoc
// @Summary      Delete all my notifications
// @Tags         notifications
// @Success      200  {object}  response.Response
// @Router       /notifications [delete]
// @Security     BearerAuth
func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	n, err := h.notificationUC.DeleteAll(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notifications deleted", gin.H{"deleted": n})
}
