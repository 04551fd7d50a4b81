package commands

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/clock"
	"Keyo/internal/middlewares"
	"Keyo/internal/repositories"
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type MarkNotificationRead struct {
	ProfileId      uuid.UUID
	NotificationId uuid.UUID
}

func (a MarkNotificationRead) LogRequest() bool {
	return true
}

func (a MarkNotificationRead) LogResponse() bool {
	return true
}

func (a MarkNotificationRead) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a MarkNotificationRead) GetRequestName() string {
	return "MarkNotificationRead"
}

type MarkNotificationReadResponse struct {
	AlreadyRead bool
}

func HandleMarkNotificationRead(ctx context.Context, command MarkNotificationRead) (*MarkNotificationReadResponse, error) {
	notification, err := getOwnedNotification(ctx, command.ProfileId, command.NotificationId)
	if err != nil {
		return nil, err
	}

	if notification.IsRead() {
		return &MarkNotificationReadResponse{AlreadyRead: true}, nil
	}

	scope := middlewares.GetScope(ctx)
	clockService := ioc.GetDependency[clock.Service](scope)
	notification.MarkRead(clockService.Now())

	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)
	err = notificationRepository.Update(ctx, notification)
	if err != nil {
		return nil, fmt.Errorf("updating notification: %w", err)
	}

	invalidateUnreadCount(ctx, command.ProfileId)

	return &MarkNotificationReadResponse{}, nil
}

// getOwnedNotification reports other profiles' notifications as not found.
func getOwnedNotification(ctx context.Context, profileId uuid.UUID, notificationId uuid.UUID) (*repositories.Notification, error) {
	scope := middlewares.GetScope(ctx)
	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)

	notification, err := notificationRepository.Single(ctx, repositories.NewNotificationFilter().
		Id(notificationId).
		RecipientId(profileId))
	if err != nil {
		return nil, fmt.Errorf("getting notification: %w", err)
	}

	return notification, nil
}
