package routes

import (
	"boleia/internal/handlers"
	"boleia/internal/middleware"
	"boleia/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// SetupChatRoutes wires the REST side of messaging plus the websocket
// upgrade. The upgrade authenticates with a short-lived ticket minted
// at /chat/ws-ticket, since browsers cannot attach headers to the
// upgrade request.
func SetupChatRoutes(r *gin.RouterGroup, chatHandler *handlers.ChatHandler, wsHandler *websocket.Handler, authRequired gin.HandlerFunc) {
	chat := r.Group("/chat")
	chat.Use(authRequired, middleware.ProfileRequired())
	{
		chat.POST("/conversations", chatHandler.StartConversation)
		chat.GET("/conversations", chatHandler.GetConversations)
		chat.GET("/conversations/:id/messages", chatHandler.GetMessages)
		chat.POST("/conversations/:id/messages", chatHandler.SendMessage)
		chat.PATCH("/conversations/:id/read", chatHandler.MarkRead)

		chat.GET("/ws-ticket", chatHandler.GetWSTicket)
	}

	r.GET("/ws", wsHandler.HandleWebSocket)
}
