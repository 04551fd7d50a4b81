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

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

// ToggleChannel switches one channel for every notification type.
type ToggleChannel struct {
	ProfileId uuid.UUID
	Channel   notifications.Channel
	Enable    bool
}

func (a ToggleChannel) LogRequest() bool {
	return true
}

func (a ToggleChannel) LogResponse() bool {
	return true
}

func (a ToggleChannel) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a ToggleChannel) GetRequestName() string {
	return "ToggleChannel"
}

type ToggleChannelResponse struct {
	UpdatedCount int
}

func HandleToggleChannel(ctx context.Context, command ToggleChannel) (*ToggleChannelResponse, error) {
	if !command.Channel.IsValid() {
		return nil, fmt.Errorf("unknown channel %q: %w", command.Channel, utils.ErrHttpBadRequest)
	}

	scope := middlewares.GetScope(ctx)
	preferenceRepository := ioc.GetDependency[repositories.NotificationPreferenceRepository](scope)

	preferences, err := materializePreferences(ctx, preferenceRepository, command.ProfileId)
	if err != nil {
		return nil, err
	}

	updated := 0
	for _, preference := range preferences {
		switch command.Channel {
		case notifications.ChannelInApp:
			preference.SetInAppEnabled(command.Enable)
		case notifications.ChannelPush:
			preference.SetPushEnabled(command.Enable)
		case notifications.ChannelEmail:
			preference.SetEmailEnabled(command.Enable)
		}

		saved, err := savePreference(ctx, preferenceRepository, preference)
		if err != nil {
			return nil, err
		}
		if saved {
			updated++
		}
	}

	return &ToggleChannelResponse{
		UpdatedCount: updated,
	}, nil
}
