package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketClaims is the identity carried by a connection ticket.
type TicketClaims struct {
	UserID   primitive.ObjectID
	UserType string
}

// TicketValidator checks a short-lived connection ticket minted by the
// REST API. Browsers cannot set an Authorization header on the
// websocket handshake, so the ticket arrives as a query parameter.
type TicketValidator func(ticket string) (*TicketClaims, error)

type Handler struct {
	hub            *Hub
	validateTicket TicketValidator
}

func NewHandler(validateTicket TicketValidator) *Handler {
	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub:            hub,
		validateTicket: validateTicket,
	}
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	ticket := c.Query("ticket")
	if ticket == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing connection ticket"})
		return
	}

	claims, err := h.validateTicket(ticket)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid connection ticket"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, claims.UserID, claims.UserType)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// SendConversationMessage pushes a persisted chat message to everyone
// viewing the conversation.
func (h *Handler) SendConversationMessage(conversationID primitive.ObjectID, data map[string]interface{}) {
	message := Message{
		Type:      "chat_message",
		RoomID:    "conversation_" + conversationID.Hex(),
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	}

	h.hub.SendToConversation(conversationID, message)
}

// SendUserNotification pushes a notification event to one user.
func (h *Handler) SendUserNotification(userID primitive.ObjectID, notificationType string, data map[string]interface{}) {
	message := Message{
		Type:      notificationType,
		UserID:    userID,
		RoomID:    "user_" + userID.Hex(),
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	}

	h.hub.SendToUser(userID, message)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
