package messages

import (
	"Keyo/internal/repositories"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type SendEmailMessage struct {
	NotificationId uuid.UUID `json:"notificationId"`
	To             string    `json:"to"`
	DisplayName    string    `json:"displayName"`
	Subject        string    `json:"subject"`
	HtmlBody       string    `json:"htmlBody"`
	TextBody       string    `json:"textBody"`
}

func (m *SendEmailMessage) OutboxMessageType() repositories.OutboxMessageType {
	return repositories.SendMailOutboxMessageType
}

func (m *SendEmailMessage) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *SendEmailMessage) Scan(value any) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("type assertion for outbox message failed")
	}

	return json.Unmarshal(bytes, &m)
}
