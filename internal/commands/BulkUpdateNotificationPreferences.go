package commands

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/middlewares"
	"Keyo/internal/repositories"
	"context"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

// BulkUpdateNotificationPreferences applies the given channel switches to
// every notification type and recomputes each master switch.
type BulkUpdateNotificationPreferences struct {
	ProfileId uuid.UUID
	InApp     *bool
	Push      *bool
	Email     *bool
}

func (a BulkUpdateNotificationPreferences) LogRequest() bool {
	return true
}

func (a BulkUpdateNotificationPreferences) LogResponse() bool {
	return true
}

func (a BulkUpdateNotificationPreferences) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a BulkUpdateNotificationPreferences) GetRequestName() string {
	return "BulkUpdateNotificationPreferences"
}

type BulkUpdateNotificationPreferencesResponse struct {
	UpdatedCount int
}

func HandleBulkUpdateNotificationPreferences(ctx context.Context, command BulkUpdateNotificationPreferences) (*BulkUpdateNotificationPreferencesResponse, error) {
	scope := middlewares.GetScope(ctx)
	preferenceRepository := ioc.GetDependency[repositories.NotificationPreferenceRepository](scope)

	preferences, err := materializePreferences(ctx, preferenceRepository, command.ProfileId)
	if err != nil {
		return nil, err
	}

	updated := 0
	for _, preference := range preferences {
		if command.InApp != nil {
			preference.SetInAppEnabled(*command.InApp)
		}
		if command.Push != nil {
			preference.SetPushEnabled(*command.Push)
		}
		if command.Email != nil {
			preference.SetEmailEnabled(*command.Email)
		}
		preference.RecomputeEnabled()

		saved, err := savePreference(ctx, preferenceRepository, preference)
		if err != nil {
			return nil, err
		}
		if saved {
			updated++
		}
	}

	return &BulkUpdateNotificationPreferencesResponse{
		UpdatedCount: updated,
	}, nil
}
