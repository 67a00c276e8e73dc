package handlers

import (
	"boleia/internal/middleware"
	"boleia/internal/services"
	"boleia/internal/utils"
	"boleia/internal/validators"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService services.ChatService
	wsSecret    string
}

func NewChatHandler(chatService services.ChatService, wsSecret string) *ChatHandler {
	return &ChatHandler{chatService: chatService, wsSecret: wsSecret}
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (h *ChatHandler) StartConversation(c *gin.Context) {
	user := middleware.GetUser(c)

	var request services.StartConversationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateStartConversation(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	conversation, err := h.chatService.StartConversation(c.Request.Context(), user.ID, &request)
	if err != nil {
		handleServiceError(c, err, "Conversa")
		return
	}

	utils.CreatedResponse(c, "Conversa iniciada", conversation)
}

func (h *ChatHandler) GetConversations(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	conversations, total, err := h.chatService.GetConversations(c.Request.Context(), user.ID, params)
	if err != nil {
		handleServiceError(c, err, "Conversa")
		return
	}

	utils.SuccessResponseWithMeta(c, "", conversations, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	user := middleware.GetUser(c)

	conversationID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request sendMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateMessageContent(request.Content); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), user.ID, conversationID, request.Content)
	if err != nil {
		handleServiceError(c, err, "Conversa")
		return
	}

	utils.CreatedResponse(c, "Mensagem enviada", message)
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	conversationID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	messages, total, err := h.chatService.GetMessages(c.Request.Context(), user.ID, conversationID, params)
	if err != nil {
		handleServiceError(c, err, "Conversa")
		return
	}

	utils.SuccessResponseWithMeta(c, "", messages, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	user := middleware.GetUser(c)

	conversationID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.chatService.MarkRead(c.Request.Context(), user.ID, conversationID); err != nil {
		handleServiceError(c, err, "Conversa")
		return
	}

	utils.SuccessResponse(c, "Mensagens marcadas como lidas", nil)
}

// GetWSTicket mints a short-lived token the client presents on the
// websocket upgrade, which cannot carry an Authorization header from
// browsers.
func (h *ChatHandler) GetWSTicket(c *gin.Context) {
	user := middleware.GetUser(c)

	ticket, err := utils.GenerateWSTicket(user.ID, string(user.UserType), h.wsSecret)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", gin.H{
		"ticket":     ticket,
		"expires_in": int(utils.WSTicketTTL.Seconds()),
	})
}
