package services

import (
	"context"
	"fmt"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"
	"boleia/pkg/logger"
	"boleia/pkg/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatService handles ride and booking conversations. History travels
// over REST; live delivery rides the websocket hub.
type ChatService interface {
	StartConversation(ctx context.Context, userID primitive.ObjectID, request *StartConversationRequest) (*models.Conversation, error)
	GetConversations(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*ConversationView, int64, error)
	SendMessage(ctx context.Context, userID, conversationID primitive.ObjectID, content string) (*models.Message, error)
	GetMessages(ctx context.Context, userID, conversationID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Message, int64, error)
	MarkRead(ctx context.Context, userID, conversationID primitive.ObjectID) error
}

type StartConversationRequest struct {
	Context   models.ConversationContext `json:"context" validate:"required,oneof=ride booking"`
	ContextID primitive.ObjectID         `json:"context_id" validate:"required"`
	PeerID    primitive.ObjectID         `json:"peer_id" validate:"required"`
}

// ConversationView decorates a conversation with the caller's unread
// count.
type ConversationView struct {
	*models.Conversation
	UnreadCount int64 `json:"unread_count"`
}

type chatService struct {
	chatRepo interfaces.ChatRepository
	notifier NotificationService
	ws       *websocket.Handler
	logger   *logger.Logger
}

func NewChatService(
	chatRepo interfaces.ChatRepository,
	notifier NotificationService,
	ws *websocket.Handler,
	logger *logger.Logger,
) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		notifier: notifier,
		ws:       ws,
		logger:   logger,
	}
}

// StartConversation reuses the existing conversation for the same
// context and pair when one exists.
func (s *chatService) StartConversation(ctx context.Context, userID primitive.ObjectID, request *StartConversationRequest) (*models.Conversation, error) {
	if request.PeerID == userID {
		return nil, fmt.Errorf("cannot start a conversation with yourself")
	}

	participants := []primitive.ObjectID{userID, request.PeerID}

	existing, err := s.chatRepo.FindConversationByContext(ctx, request.Context, request.ContextID, participants)
	if err == nil {
		return existing, nil
	}
	if err != interfaces.ErrNotFound {
		return nil, err
	}

	conversation := &models.Conversation{
		Context:      request.Context,
		ContextID:    request.ContextID,
		Participants: participants,
	}

	if err := s.chatRepo.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return conversation, nil
}

func (s *chatService) GetConversations(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*ConversationView, int64, error) {
	conversations, total, err := s.chatRepo.GetConversationsByUser(ctx, userID, params)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*ConversationView, 0, len(conversations))
	for _, conversation := range conversations {
		unread, err := s.chatRepo.CountUnread(ctx, conversation.ID, userID)
		if err != nil {
			s.logger.WithError(err).WithField("conversation_id", conversation.ID.Hex()).Warn("unread count failed")
		}
		views = append(views, &ConversationView{Conversation: conversation, UnreadCount: unread})
	}

	return views, total, nil
}

func (s *chatService) SendMessage(ctx context.Context, userID, conversationID primitive.ObjectID, content string) (*models.Message, error) {
	conversation, err := s.requireParticipant(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	content = utils.SanitizeString(content)
	if content == "" {
		return nil, fmt.Errorf("message content is empty")
	}
	if len(content) > utils.MaxMessageLength {
		return nil, fmt.Errorf("message exceeds %d characters", utils.MaxMessageLength)
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
	}

	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if err := s.chatRepo.TouchConversation(ctx, conversationID, content); err != nil {
		s.logger.WithError(err).WithField("conversation_id", conversationID.Hex()).Warn("failed to touch conversation")
	}

	s.deliver(ctx, conversation, message)

	return message, nil
}

// deliver pushes the message to the conversation room and nudges the
// offline peer with a notification.
func (s *chatService) deliver(ctx context.Context, conversation *models.Conversation, message *models.Message) {
	if s.ws != nil {
		s.ws.SendConversationMessage(conversation.ID, map[string]interface{}{
			"id":              message.ID.Hex(),
			"conversation_id": conversation.ID.Hex(),
			"sender_id":       message.SenderID.Hex(),
			"content":         message.Content,
			"created_at":      message.CreatedAt,
		})
	}

	if s.notifier == nil {
		return
	}

	for _, participant := range conversation.Participants {
		if participant == message.SenderID {
			continue
		}
		err := s.notifier.Notify(ctx, &NotificationInput{
			UserID:  participant,
			Type:    models.NotificationTypeChatMessage,
			Title:   "Nova mensagem",
			Message: message.Content,
			Data: map[string]interface{}{
				"conversation_id": conversation.ID.Hex(),
				"message_id":      message.ID.Hex(),
			},
		})
		if err != nil {
			s.logger.WithError(err).WithUserID(participant).Warn("chat notification failed")
		}
	}
}

func (s *chatService) GetMessages(ctx context.Context, userID, conversationID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Message, int64, error) {
	if _, err := s.requireParticipant(ctx, userID, conversationID); err != nil {
		return nil, 0, err
	}

	return s.chatRepo.GetMessages(ctx, conversationID, params)
}

func (s *chatService) MarkRead(ctx context.Context, userID, conversationID primitive.ObjectID) error {
	if _, err := s.requireParticipant(ctx, userID, conversationID); err != nil {
		return err
	}

	return s.chatRepo.MarkMessagesRead(ctx, conversationID, userID)
}

func (s *chatService) requireParticipant(ctx context.Context, userID, conversationID primitive.ObjectID) (*models.Conversation, error) {
	conversation, err := s.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, ErrForbidden
	}
	return conversation, nil
}
