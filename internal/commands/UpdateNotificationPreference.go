package commands

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"Keyo/utils"
	"context"
	"fmt"
	"slices"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type UpdateNotificationPreference struct {
	ProfileId        uuid.UUID
	Type             notifications.Type
	InApp            *bool
	Push             *bool
	Email            *bool
	Enabled          *bool
	CustomThresholds *[]int
}

func (a UpdateNotificationPreference) LogRequest() bool {
	return true
}

func (a UpdateNotificationPreference) LogResponse() bool {
	return true
}

func (a UpdateNotificationPreference) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a UpdateNotificationPreference) GetRequestName() string {
	return "UpdateNotificationPreference"
}

type UpdateNotificationPreferenceResponse struct {
	Type             notifications.Type
	Settings         notifications.ChannelSettings
	CustomThresholds []int
}

func HandleUpdateNotificationPreference(ctx context.Context, command UpdateNotificationPreference) (*UpdateNotificationPreferenceResponse, error) {
	if !command.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidNotificationType, command.Type)
	}

	if command.CustomThresholds != nil {
		for _, threshold := range *command.CustomThresholds {
			if threshold <= 0 {
				return nil, fmt.Errorf("thresholds must be positive: %w", utils.ErrHttpBadRequest)
			}
		}
		if len(*command.CustomThresholds) > 0 && !notifications.IsMilestone(command.Type) {
			return nil, fmt.Errorf("%s has no thresholds: %w", command.Type, utils.ErrHttpBadRequest)
		}
	}

	scope := middlewares.GetScope(ctx)
	preferenceRepository := ioc.GetDependency[repositories.NotificationPreferenceRepository](scope)

	preference, err := repositories.EffectivePreference(ctx, preferenceRepository, command.ProfileId, command.Type)
	if err != nil {
		return nil, fmt.Errorf("getting notification preference: %w", err)
	}

	if command.InApp != nil {
		preference.SetInAppEnabled(*command.InApp)
	}
	if command.Push != nil {
		preference.SetPushEnabled(*command.Push)
	}
	if command.Email != nil {
		preference.SetEmailEnabled(*command.Email)
	}
	if command.Enabled != nil {
		preference.SetIsEnabled(*command.Enabled)
	}
	if command.CustomThresholds != nil {
		thresholds := slices.Clone(*command.CustomThresholds)
		slices.Sort(thresholds)
		preference.SetCustomThresholds(slices.Compact(thresholds))
	}

	_, err = savePreference(ctx, preferenceRepository, preference)
	if err != nil {
		return nil, err
	}

	return &UpdateNotificationPreferenceResponse{
		Type:             preference.Type(),
		Settings:         preference.Settings(),
		CustomThresholds: preference.CustomThresholds(),
	}, nil
}
