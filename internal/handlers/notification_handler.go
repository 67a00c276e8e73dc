package handlers

import (
	"boleia/internal/middleware"
	"boleia/internal/models"
	"boleia/internal/services"
	"boleia/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	var status models.NotificationStatus
	if statusStr := c.Query("status"); statusStr != "" {
		status = models.NotificationStatus(statusStr)
		if status != models.NotificationStatusUnread && status != models.NotificationStatusRead {
			utils.BadRequestResponse(c, "Estado de notificação inválido")
			return
		}
	}

	notifications, total, err := h.notificationService.List(c.Request.Context(), user.ID, status, params)
	if err != nil {
		handleServiceError(c, err, "Notificação")
		return
	}

	utils.SuccessResponseWithMeta(c, "", notifications, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user := middleware.GetUser(c)

	notificationID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), user.ID, notificationID); err != nil {
		handleServiceError(c, err, "Notificação")
		return
	}

	utils.SuccessResponse(c, "Notificação marcada como lida", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user := middleware.GetUser(c)

	if err := h.notificationService.MarkAllRead(c.Request.Context(), user.ID); err != nil {
		handleServiceError(c, err, "Notificação")
		return
	}

	utils.SuccessResponse(c, "Notificações marcadas como lidas", nil)
}

func (h *NotificationHandler) CountUnread(c *gin.Context) {
	user := middleware.GetUser(c)

	count, err := h.notificationService.CountUnread(c.Request.Context(), user.ID)
	if err != nil {
		handleServiceError(c, err, "Notificação")
		return
	}

	utils.SuccessResponse(c, "", gin.H{"unread": count})
}
