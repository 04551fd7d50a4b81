package events

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"Keyo/internal/messages"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"Keyo/internal/services"
	"Keyo/internal/templates"
	"Keyo/utils"
	"context"
	"encoding/json"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type NotificationCreatedEvent struct {
	NotificationId uuid.UUID
	SendPush       bool
	SendEmail      bool
}

// QueueDeliveryOnNotificationCreated writes the push and email outbox messages
// for the channels the recipient has enabled.
func QueueDeliveryOnNotificationCreated(ctx context.Context, event NotificationCreatedEvent) error {
	if !event.SendPush && !event.SendEmail {
		return nil
	}

	scope := middlewares.GetScope(ctx)

	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)
	notification, err := notificationRepository.Single(ctx, repositories.NewNotificationFilter().Id(event.NotificationId))
	if err != nil {
		return fmt.Errorf("getting notification: %w", err)
	}

	preferenceRepository := ioc.GetDependency[repositories.NotificationPreferenceRepository](scope)
	preference, err := repositories.EffectivePreference(ctx, preferenceRepository, notification.RecipientId(), notification.Type())
	if err != nil {
		return fmt.Errorf("getting notification preference: %w", err)
	}
	settings := preference.Settings()

	outboxMessageRepository := ioc.GetDependency[repositories.OutboxMessageRepository](scope)

	if event.SendPush && settings.Allows(notifications.ChannelPush) {
		pushMessage, err := repositories.NewOutboxMessage(&messages.SendPushMessage{
			NotificationId: notification.Id(),
			RecipientId:    notification.RecipientId(),
			Title:          notification.Title(),
			Body:           notification.Message(),
			Priority:       string(notification.Priority()),
			Data:           PushData(notification, config.C.Frontend.ExternalUrl),
		})
		if err != nil {
			return fmt.Errorf("creating push outbox message: %w", err)
		}

		err = outboxMessageRepository.Insert(ctx, pushMessage)
		if err != nil {
			return fmt.Errorf("queueing push: %w", err)
		}
	}

	if event.SendEmail && settings.Allows(notifications.ChannelEmail) {
		err = queueEmail(ctx, notification, outboxMessageRepository)
		if err != nil {
			return err
		}
	}

	return nil
}

func queueEmail(ctx context.Context, notification *repositories.Notification, outboxMessageRepository repositories.OutboxMessageRepository) error {
	scope := middlewares.GetScope(ctx)

	profileRepository := ioc.GetDependency[repositories.ProfileRepository](scope)
	profile, err := profileRepository.First(ctx, repositories.NewProfileFilter().Id(notification.RecipientId()))
	if err != nil {
		return fmt.Errorf("getting recipient profile: %w", err)
	}

	if profile == nil || profile.Email() == "" {
		logging.Logger.Infow("skipping email notification, recipient has no email address",
			"notification_id", notification.Id(),
			"recipient_id", notification.RecipientId())
		return nil
	}

	templateService := ioc.GetDependency[services.TemplateService](scope)
	rendered, err := templateService.RenderNotificationEmail(EmailData(notification, profile.Name()))
	if err != nil {
		return fmt.Errorf("rendering notification email: %w", err)
	}

	mailMessage, err := repositories.NewOutboxMessage(&messages.SendEmailMessage{
		NotificationId: notification.Id(),
		To:             profile.Email(),
		DisplayName:    profile.Name(),
		Subject:        rendered.Subject,
		HtmlBody:       rendered.Html,
		TextBody:       rendered.Text,
	})
	if err != nil {
		return fmt.Errorf("creating mail outbox message: %w", err)
	}

	err = outboxMessageRepository.Insert(ctx, mailMessage)
	if err != nil {
		return fmt.Errorf("queueing email: %w", err)
	}

	return nil
}

// EmailData fills the notification email template for a recipient.
func EmailData(notification *repositories.Notification, recipientName string) templates.NotificationEmailData {
	return templates.NotificationEmailData{
		Title:            notification.Title(),
		RecipientName:    recipientName,
		Message:          notification.Message(),
		NotificationType: notification.Type(),
		ClickUrl:         notifications.AbsoluteUrl(config.C.Frontend.ExternalUrl, utils.ZeroIfNil(notification.ClickUrl())),
		AppName:          config.C.Frontend.AppName,
		AppUrl:           config.C.Frontend.ExternalUrl,
	}
}

// PushData flattens a notification into an FCM data payload. FCM only accepts
// string values, so nested values are JSON encoded. The click url is resolved
// against baseUrl so devices can open it directly.
func PushData(notification *repositories.Notification, baseUrl string) map[string]string {
	data := map[string]string{
		"notification_id":   notification.Id().String(),
		"notification_type": string(notification.Type()),
		"click_url":         notifications.AbsoluteUrl(baseUrl, utils.ZeroIfNil(notification.ClickUrl())),
		"priority":          string(notification.Priority()),
	}

	for key, value := range notification.DeepLink() {
		data[key] = stringify(value)
	}

	if len(notification.ExtraData()) > 0 {
		data["extra_data"] = stringify(map[string]any(notification.ExtraData()))
	}

	return data
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}

	serialized, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(serialized)
}
