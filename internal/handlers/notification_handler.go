package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault_backend/internal/repositories"
	"docvault_backend/internal/services"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
	expirationService   services.ExpirationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService, expirationService services.ExpirationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
		expirationService:   expirationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup, authMiddleware, adminMiddleware gin.HandlerFunc) {
	notifications := r.Group("/notifications")
	notifications.Use(authMiddleware)
	{
		notifications.GET("", h.GetNotifications)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.PUT("/:notificationId/read", h.MarkAsRead)
		notifications.PUT("/read-all", h.MarkAllAsRead)
		notifications.DELETE("/:notificationId", h.DeleteNotification)
		notifications.POST("/check-urgent", h.CheckUrgent)
	}

	admin := r.Group("/admin/notifications")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/process", h.ProcessScheduled)
	}
}

func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit, offset := ParseLimitOffset(c)
	criteria := repositories.NotificationCriteria{
		Limit:      limit,
		Offset:     offset,
		UnreadOnly: c.Query("unread_only") == "true",
	}

	response, err := h.notificationService.GetNotifications(userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.GetUnreadCount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(userID, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(userID, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// CheckUrgent runs the same-day reconciliation for the caller. The
// dashboard invokes this on load so a user never misses a same-day
// deadline between batch runs.
func (h *NotificationHandler) CheckUrgent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result := h.expirationService.CheckAndCreateUrgentNotifications(userID)
	c.JSON(http.StatusOK, result)
}

// ProcessScheduled runs one processor batch on demand.
func (h *NotificationHandler) ProcessScheduled(c *gin.Context) {
	result := h.expirationService.ProcessScheduledNotifications()
	c.JSON(http.StatusOK, result)
}
