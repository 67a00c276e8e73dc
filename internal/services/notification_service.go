package services

import (
	"context"
	"fmt"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"
	"boleia/pkg/logger"
	"boleia/pkg/push"
	"boleia/pkg/sms"
	"boleia/pkg/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService persists in-app notifications and fans them out
// over push, websocket and optionally SMS. Delivery failures on any
// channel are logged and never surfaced to the caller; the in-app
// record is the one channel that must succeed.
type NotificationService interface {
	Notify(ctx context.Context, input *NotificationInput) error

	List(ctx context.Context, userID primitive.ObjectID, status models.NotificationStatus, params *utils.PaginationParams) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, userID, notificationID primitive.ObjectID) error
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) error
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type NotificationInput struct {
	UserID  primitive.ObjectID
	Type    models.NotificationType
	Title   string
	Message string
	Data    map[string]interface{}

	// SendSMS additionally delivers the message over SMS when the user
	// has a phone number on file. Reserved for booking decisions.
	SendSMS bool
}

type notificationService struct {
	notificationRepo interfaces.NotificationRepository
	userRepo         interfaces.UserRepository
	pushProvider     push.Provider
	smsProvider      sms.Provider
	smsFrom          string
	ws               *websocket.Handler
	logger           *logger.Logger
}

// NewNotificationService wires the fan-out channels. Any provider and
// the websocket handler may be nil; the corresponding channel is then
// skipped.
func NewNotificationService(
	notificationRepo interfaces.NotificationRepository,
	userRepo interfaces.UserRepository,
	pushProvider push.Provider,
	smsProvider sms.Provider,
	smsFrom string,
	ws *websocket.Handler,
	logger *logger.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		pushProvider:     pushProvider,
		smsProvider:      smsProvider,
		smsFrom:          smsFrom,
		ws:               ws,
		logger:           logger,
	}
}

func (s *notificationService) Notify(ctx context.Context, input *NotificationInput) error {
	notification := &models.Notification{
		UserID:  input.UserID,
		Type:    input.Type,
		Title:   input.Title,
		Message: input.Message,
		Data:    input.Data,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		s.logger.WithError(err).WithUserID(input.UserID).Warn("notification fan-out skipped, user lookup failed")
		return nil
	}

	s.sendPush(ctx, user, input)
	s.sendWS(user.ID, notification)
	if input.SendSMS {
		s.sendSMS(ctx, user, input)
	}

	return nil
}

func (s *notificationService) sendPush(ctx context.Context, user *models.User, input *NotificationInput) {
	if s.pushProvider == nil || user.FCMToken == "" {
		return
	}

	data := make(map[string]string, len(input.Data)+1)
	data["type"] = string(input.Type)
	for k, v := range input.Data {
		data[k] = fmt.Sprintf("%v", v)
	}

	_, err := s.pushProvider.SendNotification(ctx, &push.Notification{
		Token: user.FCMToken,
		Title: input.Title,
		Body:  input.Message,
		Data:  data,
	})
	if err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("push delivery failed")
	}
}

func (s *notificationService) sendWS(userID primitive.ObjectID, notification *models.Notification) {
	if s.ws == nil {
		return
	}

	s.ws.SendUserNotification(userID, string(notification.Type), map[string]interface{}{
		"id":      notification.ID.Hex(),
		"type":    notification.Type,
		"title":   notification.Title,
		"message": notification.Message,
		"data":    notification.Data,
	})
}

func (s *notificationService) sendSMS(ctx context.Context, user *models.User, input *NotificationInput) {
	if s.smsProvider == nil || user.Phone == "" {
		return
	}

	_, err := s.smsProvider.SendSMS(ctx, &sms.Request{
		To:      user.Phone,
		From:    s.smsFrom,
		Message: input.Title + ": " + input.Message,
	})
	if err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("sms delivery failed")
	}
}

func (s *notificationService) List(ctx context.Context, userID primitive.ObjectID, status models.NotificationStatus, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return s.notificationRepo.GetByUser(ctx, userID, status, params)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID primitive.ObjectID) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return ErrForbidden
	}

	return s.notificationRepo.MarkRead(ctx, notificationID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *notificationService) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}
