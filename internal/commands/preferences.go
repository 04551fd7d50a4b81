package commands

import (
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"context"
	"fmt"

	"github.com/google/uuid"
)

// materializePreferences returns a preference for every notification type,
// starting from the defaults where the profile has no stored row.
func materializePreferences(ctx context.Context, repository repositories.NotificationPreferenceRepository, profileId uuid.UUID) ([]*repositories.NotificationPreference, error) {
	stored, err := repository.List(ctx, repositories.NewNotificationPreferenceFilter().ProfileId(profileId))
	if err != nil {
		return nil, fmt.Errorf("listing notification preferences: %w", err)
	}

	byType := make(map[notifications.Type]*repositories.NotificationPreference, len(stored))
	for _, preference := range stored {
		byType[preference.Type()] = preference
	}

	result := make([]*repositories.NotificationPreference, 0, len(notifications.AllTypes()))
	for _, notificationType := range notifications.AllTypes() {
		preference, ok := byType[notificationType]
		if !ok {
			preference = repositories.NewNotificationPreference(profileId, notificationType)
		}
		result = append(result, preference)
	}

	return result, nil
}

// savePreference inserts defaults that were never stored and updates changed rows.
func savePreference(ctx context.Context, repository repositories.NotificationPreferenceRepository, preference *repositories.NotificationPreference) (bool, error) {
	if !preference.IsStored() {
		err := repository.Insert(ctx, preference)
		if err != nil {
			return false, fmt.Errorf("inserting notification preference: %w", err)
		}
		return true, nil
	}

	if !preference.HasChanges() {
		return false, nil
	}

	err := repository.Update(ctx, preference)
	if err != nil {
		return false, fmt.Errorf("updating notification preference: %w", err)
	}
	return true, nil
}
