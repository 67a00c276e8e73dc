package routes

import (
	"boleia/internal/handlers"
	"boleia/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(r *gin.RouterGroup, notificationHandler *handlers.NotificationHandler, authRequired gin.HandlerFunc) {
	notifications := r.Group("/notifications")
	notifications.Use(authRequired, middleware.ProfileRequired())
	{
		notifications.GET("", notificationHandler.List)
		notifications.GET("/unread-count", notificationHandler.CountUnread)
		notifications.PATCH("/read-all", notificationHandler.MarkAllRead)
		notifications.PATCH("/:id/read", notificationHandler.MarkRead)
	}
}
