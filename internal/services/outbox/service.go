package outbox

import (
	"Keyo/internal/clock"
	"Keyo/internal/logging"
	"Keyo/internal/messages"
	"Keyo/internal/metrics"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"Keyo/internal/services"
	"Keyo/internal/services/push"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=./mocks/mock_deliveryService.go -package=mocks Keyo/internal/services/outbox DeliveryService
type DeliveryService interface {
	Deliver(ctx context.Context, message *repositories.OutboxMessage) error
}

//go:generate mockgen -destination=./mocks/mock_messageBroker.go -package=mocks Keyo/internal/services/outbox MessageBroker
type MessageBroker interface {
	Distribute(ctx context.Context, message *repositories.OutboxMessage) error
}

type messageBroker struct {
}

func NewMessageBroker() MessageBroker {
	return &messageBroker{}
}

func (m *messageBroker) Distribute(ctx context.Context, message *repositories.OutboxMessage) error {
	logging.Logger.Debugw("distributing message", "message_type", message.Type(), "message_id", message.Id())

	switch message.Type() {
	case repositories.SendMailOutboxMessageType:
		var details messages.SendEmailMessage
		err := json.Unmarshal(message.Details(), &details)
		if err != nil {
			return fmt.Errorf("failed to unmarshal send email message details: %w", err)
		}
		return m.sendMail(ctx, details)

	case repositories.SendPushOutboxMessageType:
		var details messages.SendPushMessage
		err := json.Unmarshal(message.Details(), &details)
		if err != nil {
			return fmt.Errorf("failed to unmarshal send push message details: %w", err)
		}
		return m.sendPush(ctx, details)

	default:
		return fmt.Errorf("unsupported message type: %s", message.Type())
	}
}

func (m *messageBroker) sendMail(ctx context.Context, details messages.SendEmailMessage) error {
	scope := middlewares.GetScope(ctx)
	mailService := ioc.GetDependency[services.MailService](scope)

	mail := services.NewNotificationMail(details.To, details.DisplayName, details.Subject, details.HtmlBody, details.TextBody)
	err := mailService.Send(mail)
	if err != nil {
		metrics.CountDelivery(string(notifications.ChannelEmail), metrics.ResultFailed)
		return fmt.Errorf("failed to send email: %w", err)
	}
	metrics.CountDelivery(string(notifications.ChannelEmail), metrics.ResultSent)

	return markNotification(ctx, details.NotificationId, (*repositories.Notification).MarkEmailSent)
}

func (m *messageBroker) sendPush(ctx context.Context, details messages.SendPushMessage) error {
	scope := middlewares.GetScope(ctx)
	deviceRepository := ioc.GetDependency[repositories.DeviceRepository](scope)
	pushService := ioc.GetDependency[push.Service](scope)
	clockService := ioc.GetDependency[clock.Service](scope)

	devices, err := deviceRepository.List(ctx, repositories.NewDeviceFilter().
		ProfileId(details.RecipientId).
		Active(true))
	if err != nil {
		return fmt.Errorf("listing devices: %w", err)
	}

	if len(devices) == 0 {
		metrics.CountDelivery(string(notifications.ChannelPush), metrics.ResultSkipped)
		return nil
	}

	sent := 0
	var failures []error
	for _, device := range devices {
		err := pushService.Send(ctx, push.Message{
			Token:    device.Token(),
			Title:    details.Title,
			Body:     details.Body,
			Priority: details.Priority,
			Data:     details.Data,
		})

		switch {
		case errors.Is(err, push.ErrUnregisteredToken):
			logging.Logger.Infow("deactivating unregistered device", "device_id", device.Id())
			device.SetActive(false)

		case err != nil:
			failures = append(failures, err)
			continue

		default:
			sent++
			device.Touch(clockService.Now())
		}

		if err := deviceRepository.Update(ctx, device); err != nil {
			return fmt.Errorf("updating device: %w", err)
		}
	}

	if sent == 0 && len(failures) > 0 {
		metrics.CountDelivery(string(notifications.ChannelPush), metrics.ResultFailed)
		return fmt.Errorf("failed to send push to any device: %w", errors.Join(failures...))
	}

	if sent == 0 {
		metrics.CountDelivery(string(notifications.ChannelPush), metrics.ResultSkipped)
		return nil
	}

	metrics.CountDelivery(string(notifications.ChannelPush), metrics.ResultSent)
	return markNotification(ctx, details.NotificationId, (*repositories.Notification).MarkPushSent)
}

func markNotification(ctx context.Context, notificationId uuid.UUID, mark func(*repositories.Notification, time.Time)) error {
	scope := middlewares.GetScope(ctx)
	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)
	clockService := ioc.GetDependency[clock.Service](scope)

	notification, err := notificationRepository.First(ctx, repositories.NewNotificationFilter().Id(notificationId))
	if err != nil {
		return fmt.Errorf("getting notification: %w", err)
	}

	// deleted by the recipient in the meantime
	if notification == nil {
		return nil
	}

	mark(notification, clockService.Now())
	err = notificationRepository.Update(ctx, notification)
	if err != nil {
		return fmt.Errorf("updating notification: %w", err)
	}

	return nil
}
