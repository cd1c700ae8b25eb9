package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// UserTopic is the FCM topic the app subscribes a signed-in device to.
func UserTopic(userID string) string {
	return "user_" + userID
}

func (s *DefaultNotificationService) NotifyUser(ctx context.Context, userID, title, body string, data map[string]string) error {
	if userID == "" {
		return fmt.Errorf("NotifyUser: user id is required")
	}

	payload := make(map[string]string, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	if _, ok := payload["role"]; !ok {
		payload["role"] = "user"
	}

	msg := &messaging.Message{
		Topic: UserTopic(userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: payload,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "booking_reminders",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := s.Sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("NotifyUser: failed to send FCM message: %w", err)
	}

	s.Logger.Info("Push sent", zap.String("userId", userID), zap.String("messageId", id))
	return nil
}
