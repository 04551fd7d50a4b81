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

type ClickNotification struct {
	ProfileId      uuid.UUID
	NotificationId uuid.UUID
}

func (a ClickNotification) LogRequest() bool {
	return true
}

func (a ClickNotification) LogResponse() bool {
	return true
}

func (a ClickNotification) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a ClickNotification) GetRequestName() string {
	return "ClickNotification"
}

type ClickNotificationResponse struct {
	ClickUrl *string
	DeepLink map[string]any
}

func HandleClickNotification(ctx context.Context, command ClickNotification) (*ClickNotificationResponse, error) {
	notification, err := getOwnedNotification(ctx, command.ProfileId, command.NotificationId)
	if err != nil {
		return nil, err
	}

	wasRead := notification.IsRead()

	scope := middlewares.GetScope(ctx)
	clockService := ioc.GetDependency[clock.Service](scope)
	notification.MarkClicked(clockService.Now())

	if notification.HasChanges() {
		notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)
		err = notificationRepository.Update(ctx, notification)
		if err != nil {
			return nil, fmt.Errorf("updating notification: %w", err)
		}
	}

	if !wasRead {
		invalidateUnreadCount(ctx, command.ProfileId)
	}

	return &ClickNotificationResponse{
		ClickUrl: notification.ClickUrl(),
		DeepLink: notification.DeepLink(),
	}, nil
}
