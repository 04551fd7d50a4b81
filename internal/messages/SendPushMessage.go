package messages

import (
	"Keyo/internal/repositories"

	"github.com/google/uuid"
)

// SendPushMessage fans a notification out to every active device of the recipient.
// Data values are strings because FCM data payloads only carry strings.
type SendPushMessage struct {
	NotificationId uuid.UUID         `json:"notificationId"`
	RecipientId    uuid.UUID         `json:"recipientId"`
	Title          string            `json:"title"`
	Body           string            `json:"body"`
	Priority       string            `json:"priority"`
	Data           map[string]string `json:"data"`
}

func (m *SendPushMessage) OutboxMessageType() repositories.OutboxMessageType {
	return repositories.SendPushOutboxMessageType
}
