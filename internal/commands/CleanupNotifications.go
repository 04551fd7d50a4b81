package commands

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/clock"
	"Keyo/internal/middlewares"
	"Keyo/internal/repositories"
	"Keyo/utils"
	"context"
	"fmt"
	"time"

	"github.com/The127/ioc"
)

// CleanupNotifications deletes expired notifications and read notifications
// older than the retention window. Unread notifications stay until they expire.
type CleanupNotifications struct {
	Retention time.Duration
}

func (a CleanupNotifications) LogRequest() bool {
	return true
}

func (a CleanupNotifications) LogResponse() bool {
	return true
}

func (a CleanupNotifications) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.RequirePermission(ctx, permissions.NotificationManageAny), nil
}

func (a CleanupNotifications) GetRequestName() string {
	return "CleanupNotifications"
}

type CleanupNotificationsResponse struct {
	ExpiredCount int
	OldCount     int
}

func HandleCleanupNotifications(ctx context.Context, command CleanupNotifications) (*CleanupNotificationsResponse, error) {
	if command.Retention <= 0 {
		return nil, fmt.Errorf("retention must be positive: %w", utils.ErrHttpBadRequest)
	}

	scope := middlewares.GetScope(ctx)
	clockService := ioc.GetDependency[clock.Service](scope)
	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)

	now := clockService.Now()

	expired, err := notificationRepository.DeleteExpired(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("deleting expired notifications: %w", err)
	}

	old, err := notificationRepository.DeleteReadBefore(ctx, now.Add(-command.Retention))
	if err != nil {
		return nil, fmt.Errorf("deleting old read notifications: %w", err)
	}

	return &CleanupNotificationsResponse{
		ExpiredCount: expired,
		OldCount:     old,
	}, nil
}
