package push

import (
	"context"
	"fmt"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

type APNSProvider struct {
	client *apns2.Client
	topic  string
}

type APNSConfig struct {
	KeyFile    string
	KeyID      string
	TeamID     string
	Topic      string
	Production bool
}

func NewAPNSProvider(config *APNSConfig) (*APNSProvider, error) {
	authKey, err := token.AuthKeyFromFile(config.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNS auth key: %w", err)
	}

	tok := &token.Token{
		AuthKey: authKey,
		KeyID:   config.KeyID,
		TeamID:  config.TeamID,
	}

	client := apns2.NewTokenClient(tok)
	if config.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}

	return &APNSProvider{
		client: client,
		topic:  config.Topic,
	}, nil
}

func (a *APNSProvider) SendNotification(ctx context.Context, request *Notification) (*Result, error) {
	notification := a.buildNotification(request)

	response, err := a.client.PushWithContext(ctx, notification)
	if err != nil {
		return &Result{
			Success: false,
			Error:   err.Error(),
			Token:   request.Token,
		}, err
	}

	if !response.Sent() {
		return &Result{
			Success: false,
			Error:   response.Reason,
			Token:   request.Token,
		}, fmt.Errorf("APNS rejected notification: %s", response.Reason)
	}

	return &Result{
		MessageID: response.ApnsID,
		Success:   true,
		Token:     request.Token,
	}, nil
}

func (a *APNSProvider) SendBulkNotifications(ctx context.Context, requests []*Notification) ([]*Result, error) {
	results := make([]*Result, len(requests))
	for i, req := range requests {
		result, err := a.SendNotification(ctx, req)
		if err != nil {
			result = &Result{
				Success: false,
				Error:   err.Error(),
				Token:   req.Token,
			}
		}
		results[i] = result
	}
	return results, nil
}

func (a *APNSProvider) buildNotification(request *Notification) *apns2.Notification {
	p := payload.NewPayload().
		AlertTitle(request.Title).
		AlertBody(request.Body)

	if request.Sound != "" {
		p = p.Sound(request.Sound)
	} else {
		p = p.Sound("default")
	}
	if request.Badge > 0 {
		p = p.Badge(request.Badge)
	}

	for key, value := range request.Data {
		p = p.Custom(key, value)
	}

	return &apns2.Notification{
		DeviceToken: request.Token,
		Topic:       a.topic,
		Payload:     p,
	}
}
