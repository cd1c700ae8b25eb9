package notification

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends FCM pushes to users.
type NotificationService interface {
	// NotifyUser pushes to every device subscribed to the user's topic.
	NotifyUser(ctx context.Context, userID, title, body string, data map[string]string) error
}

// MessageSender is the part of the FCM client this package uses.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Sender MessageSender
	Logger *zap.Logger
}

func NewNotificationService(sender MessageSender, logger *zap.Logger) *DefaultNotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{Sender: sender, Logger: logger}
}
