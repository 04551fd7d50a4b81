package queries

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type ListNotificationPreferences struct {
	ProfileId uuid.UUID
}

func (a ListNotificationPreferences) LogRequest() bool {
	return true
}

func (a ListNotificationPreferences) LogResponse() bool {
	return false
}

func (a ListNotificationPreferences) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a ListNotificationPreferences) GetRequestName() string {
	return "ListNotificationPreferences"
}

type ListNotificationPreferencesResponse struct {
	Items []ListNotificationPreferencesResponseItem
}

type ListNotificationPreferencesResponseItem struct {
	Type              notifications.Type
	Label             string
	Settings          notifications.ChannelSettings
	CustomThresholds  []int
	DefaultThresholds []int
	IsDefault         bool
}

// HandleListNotificationPreferences returns one entry per notification type in
// declaration order, using the defaults where nothing is stored.
func HandleListNotificationPreferences(ctx context.Context, query ListNotificationPreferences) (*ListNotificationPreferencesResponse, error) {
	scope := middlewares.GetScope(ctx)
	preferenceRepository := ioc.GetDependency[repositories.NotificationPreferenceRepository](scope)

	stored, err := preferenceRepository.List(ctx, repositories.NewNotificationPreferenceFilter().ProfileId(query.ProfileId))
	if err != nil {
		return nil, fmt.Errorf("listing notification preferences: %w", err)
	}

	byType := make(map[notifications.Type]*repositories.NotificationPreference, len(stored))
	for _, preference := range stored {
		byType[preference.Type()] = preference
	}

	items := make([]ListNotificationPreferencesResponseItem, 0, len(notifications.AllTypes()))
	for _, notificationType := range notifications.AllTypes() {
		item := ListNotificationPreferencesResponseItem{
			Type:              notificationType,
			Label:             notifications.Label(notificationType),
			Settings:          notifications.DefaultSettings(notificationType),
			CustomThresholds:  make([]int, 0),
			DefaultThresholds: notifications.DefaultThresholds(notificationType),
			IsDefault:         true,
		}

		if preference, ok := byType[notificationType]; ok {
			item.Settings = preference.Settings()
			item.CustomThresholds = preference.CustomThresholds()
			item.IsDefault = false
		}

		items = append(items, item)
	}

	return &ListNotificationPreferencesResponse{
		Items: items,
	}, nil
}
