package push

import "context"

// Provider delivers push notifications to a device token.
type Provider interface {
	SendNotification(ctx context.Context, request *Notification) (*Result, error)
	SendBulkNotifications(ctx context.Context, requests []*Notification) ([]*Result, error)
}

type Notification struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Sound string            `json:"sound,omitempty"`
	Badge int               `json:"badge,omitempty"`
}

type Result struct {
	MessageID string `json:"message_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Token     string `json:"token,omitempty"`
}
