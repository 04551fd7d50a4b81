package commands

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/middlewares"
	"Keyo/internal/repositories"
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type DeleteNotification struct {
	ProfileId      uuid.UUID
	NotificationId uuid.UUID
}

func (a DeleteNotification) LogRequest() bool {
	return true
}

func (a DeleteNotification) LogResponse() bool {
	return true
}

func (a DeleteNotification) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a DeleteNotification) GetRequestName() string {
	return "DeleteNotification"
}

type DeleteNotificationResponse struct{}

func HandleDeleteNotification(ctx context.Context, command DeleteNotification) (*DeleteNotificationResponse, error) {
	notification, err := getOwnedNotification(ctx, command.ProfileId, command.NotificationId)
	if err != nil {
		return nil, err
	}

	scope := middlewares.GetScope(ctx)
	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)
	err = notificationRepository.Delete(ctx, notification.Id())
	if err != nil {
		return nil, fmt.Errorf("deleting notification: %w", err)
	}

	if !notification.IsRead() {
		invalidateUnreadCount(ctx, command.ProfileId)
	}

	return &DeleteNotificationResponse{}, nil
}
