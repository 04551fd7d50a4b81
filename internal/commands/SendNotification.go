package commands

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/database"
	"Keyo/internal/events"
	"Keyo/internal/logging"
	"Keyo/internal/mediator"
	"Keyo/internal/metrics"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"Keyo/internal/services/keyValue"
	"Keyo/utils"
	"context"
	"fmt"
	"time"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

// Contact is the recipient's address card. When present it refreshes the
// profile directory so email delivery can reach the recipient.
type Contact struct {
	Username    string
	DisplayName string
	Email       string
}

type SendNotification struct {
	RecipientId uuid.UUID
	Recipient   *Contact
	ActorId     *uuid.UUID
	TargetType  *notifications.TargetType
	TargetId    *string
	Type        notifications.Type
	Title       string
	Message     string
	ClickUrl    *string
	DeepLink    *notifications.DeepLink
	ExtraData   map[string]any
	Priority    notifications.Priority
	SendPush    bool
	SendEmail   bool
	ExpiresAt   *time.Time
}

func (a SendNotification) LogRequest() bool {
	return true
}

func (a SendNotification) LogResponse() bool {
	return true
}

func (a SendNotification) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.RequirePermission(ctx, permissions.NotificationSend), nil
}

func (a SendNotification) GetRequestName() string {
	return "SendNotification"
}

type SendNotificationResponse struct {
	Id      uuid.UUID
	Skipped bool
}

func HandleSendNotification(ctx context.Context, command SendNotification) (*SendNotificationResponse, error) {
	if !command.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidNotificationType, command.Type)
	}

	priority := command.Priority
	if priority == "" {
		priority = notifications.PriorityNormal
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidPriority, priority)
	}

	if command.TargetType != nil && !command.TargetType.IsValid() {
		return nil, fmt.Errorf("unknown target type %q: %w", *command.TargetType, utils.ErrHttpBadRequest)
	}

	scope := middlewares.GetScope(ctx)

	if command.Recipient != nil {
		profileRepository := ioc.GetDependency[repositories.ProfileRepository](scope)
		profile := repositories.NewProfile(command.RecipientId, command.Recipient.Username, command.Recipient.DisplayName, command.Recipient.Email)
		err := profileRepository.Upsert(ctx, profile)
		if err != nil {
			return nil, fmt.Errorf("storing recipient contact: %w", err)
		}
	}

	preferenceRepository := ioc.GetDependency[repositories.NotificationPreferenceRepository](scope)
	preference, err := repositories.EffectivePreference(ctx, preferenceRepository, command.RecipientId, command.Type)
	if err != nil {
		return nil, fmt.Errorf("getting notification preference: %w", err)
	}

	if !preference.IsEnabled() || !preference.InAppEnabled() {
		metrics.CountDelivery(string(notifications.ChannelInApp), metrics.ResultSkipped)
		return &SendNotificationResponse{Skipped: true}, nil
	}

	notification := repositories.NewNotification(command.RecipientId, command.Type, command.Title, command.Message, priority)
	notification.SetActorId(command.ActorId)
	if command.TargetType != nil && command.TargetId != nil {
		notification.SetTarget(*command.TargetType, *command.TargetId)
	}
	notification.SetClickUrl(command.ClickUrl)
	if command.DeepLink != nil {
		notification.SetDeepLink(*command.DeepLink)
	}
	notification.SetExtraData(command.ExtraData)
	notification.SetExpiresAt(command.ExpiresAt)

	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)
	err = notificationRepository.Insert(ctx, notification)
	if err != nil {
		return nil, fmt.Errorf("inserting notification: %w", err)
	}
	metrics.NotificationsCreated.WithLabelValues(string(command.Type)).Inc()
	metrics.CountDelivery(string(notifications.ChannelInApp), metrics.ResultSent)

	invalidateUnreadCount(ctx, command.RecipientId)

	m := ioc.GetDependency[mediator.Mediator](scope)
	err = mediator.SendEvent(ctx, m, events.NotificationCreatedEvent{
		NotificationId: notification.Id(),
		SendPush:       command.SendPush,
		SendEmail:      command.SendEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("publishing notification created event: %w", err)
	}

	return &SendNotificationResponse{
		Id: notification.Id(),
	}, nil
}

// invalidateUnreadCount drops the cached badge count now and once more after
// the scope commits, so a read racing the open transaction cannot pin a stale
// count. A stale cache entry expires on its own, so failures are only logged.
func invalidateUnreadCount(ctx context.Context, profileId uuid.UUID) {
	scope := middlewares.GetScope(ctx)
	store := ioc.GetDependency[keyValue.Store](scope)
	key := notifications.UnreadCountCacheKey(profileId)

	drop := func(ctx context.Context) {
		err := store.Delete(ctx, key)
		if err != nil {
			logging.Logger.Warnw("failed to invalidate unread count", "profile_id", profileId, "error", err)
		}
	}

	drop(ctx)

	dbService := ioc.GetDependency[database.DbService](scope)
	dbService.AfterCommit(func() {
		drop(context.WithoutCancel(ctx))
	})
}
