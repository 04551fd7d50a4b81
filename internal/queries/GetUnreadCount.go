package queries

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/logging"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"Keyo/internal/services/keyValue"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type GetUnreadCount struct {
	ProfileId uuid.UUID
}

func (a GetUnreadCount) LogRequest() bool {
	return false
}

func (a GetUnreadCount) LogResponse() bool {
	return false
}

func (a GetUnreadCount) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a GetUnreadCount) GetRequestName() string {
	return "GetUnreadCount"
}

type GetUnreadCountResponse struct {
	UnreadCount int
	Cached      bool
}

func HandleGetUnreadCount(ctx context.Context, query GetUnreadCount) (*GetUnreadCountResponse, error) {
	scope := middlewares.GetScope(ctx)
	store := ioc.GetDependency[keyValue.Store](scope)
	key := notifications.UnreadCountCacheKey(query.ProfileId)

	cached, err := store.Get(ctx, key)
	switch {
	case err == nil:
		count, parseErr := strconv.Atoi(cached)
		if parseErr == nil {
			return &GetUnreadCountResponse{UnreadCount: count, Cached: true}, nil
		}
		logging.Logger.Warnw("ignoring malformed unread count", "key", key, "value", cached)
	case errors.Is(err, keyValue.ErrNotFound):
	default:
		logging.Logger.Warnw("failed to read unread count from cache", "key", key, "error", err)
	}

	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)
	count, err := notificationRepository.Count(ctx, repositories.NewNotificationFilter().
		RecipientId(query.ProfileId).
		IsRead(false))
	if err != nil {
		return nil, fmt.Errorf("counting unread notifications: %w", err)
	}

	err = store.Set(ctx, key, strconv.Itoa(count), keyValue.WithExpiration(notifications.UnreadCountCacheTtl))
	if err != nil {
		logging.Logger.Warnw("failed to cache unread count", "key", key, "error", err)
	}

	return &GetUnreadCountResponse{
		UnreadCount: count,
	}, nil
}
