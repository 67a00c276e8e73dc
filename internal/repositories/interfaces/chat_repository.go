package interfaces

import (
	"context"

	"boleia/internal/models"
	"boleia/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatRepository interface {
	// Conversations
	CreateConversation(ctx context.Context, conversation *models.Conversation) error
	GetConversation(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error)
	FindConversationByContext(ctx context.Context, context models.ConversationContext, contextID primitive.ObjectID, participants []primitive.ObjectID) (*models.Conversation, error)
	GetConversationsByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Conversation, int64, error)
	TouchConversation(ctx context.Context, id primitive.ObjectID, lastMessage string) error

	// Messages
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessages(ctx context.Context, conversationID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Message, int64, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID primitive.ObjectID) error
	CountUnread(ctx context.Context, conversationID, readerID primitive.ObjectID) (int64, error)
}
