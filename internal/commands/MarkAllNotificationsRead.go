package commands

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/clock"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"Keyo/utils"
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type MarkAllNotificationsRead struct {
	ProfileId uuid.UUID

	// Type limits the update to one notification type.
	Type *notifications.Type
}

func (a MarkAllNotificationsRead) LogRequest() bool {
	return true
}

func (a MarkAllNotificationsRead) LogResponse() bool {
	return true
}

func (a MarkAllNotificationsRead) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a MarkAllNotificationsRead) GetRequestName() string {
	return "MarkAllNotificationsRead"
}

type MarkAllNotificationsReadResponse struct {
	UpdatedCount int
}

func HandleMarkAllNotificationsRead(ctx context.Context, command MarkAllNotificationsRead) (*MarkAllNotificationsReadResponse, error) {
	filter := repositories.NewNotificationFilter().RecipientId(command.ProfileId)
	if command.Type != nil {
		if !command.Type.IsValid() {
			return nil, fmt.Errorf("%w: %q", utils.ErrInvalidNotificationType, *command.Type)
		}
		filter = filter.Types(*command.Type)
	}

	scope := middlewares.GetScope(ctx)
	clockService := ioc.GetDependency[clock.Service](scope)
	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)

	updated, err := notificationRepository.MarkAllRead(ctx, filter, clockService.Now())
	if err != nil {
		return nil, fmt.Errorf("marking notifications read: %w", err)
	}

	if updated > 0 {
		invalidateUnreadCount(ctx, command.ProfileId)
	}

	return &MarkAllNotificationsReadResponse{
		UpdatedCount: updated,
	}, nil
}
