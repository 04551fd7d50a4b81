package handlers

import (
	"Keyo/internal/commands"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/queries"
	"Keyo/utils"
	"fmt"
	"net/http"

	"github.com/The127/ioc"
	"github.com/gorilla/mux"
)

type PreferenceDto struct {
	NotificationType  notifications.Type `json:"notificationType"`
	Label             string             `json:"label"`
	InAppEnabled      bool               `json:"inAppEnabled"`
	PushEnabled       bool               `json:"pushEnabled"`
	EmailEnabled      bool               `json:"emailEnabled"`
	IsEnabled         bool               `json:"isEnabled"`
	CustomThresholds  []int              `json:"customThresholds"`
	DefaultThresholds []int              `json:"defaultThresholds,omitempty"`
	IsDefault         bool               `json:"isDefault"`
}

type ListPreferencesResponseDto struct {
	Items []PreferenceDto `json:"items"`
}

// ListNotificationPreferences lists the delivery preferences for every type
// @Summary List notification preferences
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListPreferencesResponseDto
// @Failure 401
// @Router /api/notifications/preferences [get]
func ListNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*queries.ListNotificationPreferencesResponse](ctx, m, queries.ListNotificationPreferences{
		ProfileId: currentProfileId(r),
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, ListPreferencesResponseDto{
		Items: utils.MapSlice(response.Items, func(x queries.ListNotificationPreferencesResponseItem) PreferenceDto {
			return PreferenceDto{
				NotificationType:  x.Type,
				Label:             x.Label,
				InAppEnabled:      x.Settings.InApp,
				PushEnabled:       x.Settings.Push,
				EmailEnabled:      x.Settings.Email,
				IsEnabled:         x.Settings.Enabled,
				CustomThresholds:  x.CustomThresholds,
				DefaultThresholds: x.DefaultThresholds,
				IsDefault:         x.IsDefault,
			}
		}),
	})
}

type UpdatePreferenceRequestDto struct {
	InAppEnabled     *bool  `json:"inAppEnabled"`
	PushEnabled      *bool  `json:"pushEnabled"`
	EmailEnabled     *bool  `json:"emailEnabled"`
	IsEnabled        *bool  `json:"isEnabled"`
	CustomThresholds *[]int `json:"customThresholds" validate:"omitempty,dive,gt=0"`
}

// UpdateNotificationPreference changes the preference of one type
// @Summary Update notification preference
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param type path string true "Notification type"
// @Param request body UpdatePreferenceRequestDto true "Switches to change"
// @Success 200 {object} PreferenceDto
// @Failure 400
// @Failure 401
// @Router /api/notifications/preferences/{type} [post]
func UpdateNotificationPreference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notificationType := notifications.Type(mux.Vars(r)["type"])

	dto, err := decodeDto[UpdatePreferenceRequestDto](r)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*commands.UpdateNotificationPreferenceResponse](ctx, m, commands.UpdateNotificationPreference{
		ProfileId:        currentProfileId(r),
		Type:             notificationType,
		InApp:            dto.InAppEnabled,
		Push:             dto.PushEnabled,
		Email:            dto.EmailEnabled,
		Enabled:          dto.IsEnabled,
		CustomThresholds: dto.CustomThresholds,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, PreferenceDto{
		NotificationType: response.Type,
		Label:            notifications.Label(response.Type),
		InAppEnabled:     response.Settings.InApp,
		PushEnabled:      response.Settings.Push,
		EmailEnabled:     response.Settings.Email,
		IsEnabled:        response.Settings.Enabled,
		CustomThresholds: response.CustomThresholds,
	})
}

type BulkUpdatePreferencesRequestDto struct {
	InAppEnabled *bool `json:"inAppEnabled"`
	PushEnabled  *bool `json:"pushEnabled"`
	EmailEnabled *bool `json:"emailEnabled"`
}

// BulkUpdateNotificationPreferences applies channel switches to every type
// @Summary Bulk update notification preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkUpdatePreferencesRequestDto true "Switches to change"
// @Success 200 {object} UpdatedCountDto
// @Failure 400
// @Failure 401
// @Router /api/notifications/preferences/bulk-update [post]
func BulkUpdateNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dto, err := decodeDto[BulkUpdatePreferencesRequestDto](r)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*commands.BulkUpdateNotificationPreferencesResponse](ctx, m, commands.BulkUpdateNotificationPreferences{
		ProfileId: currentProfileId(r),
		InApp:     dto.InAppEnabled,
		Push:      dto.PushEnabled,
		Email:     dto.EmailEnabled,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, UpdatedCountDto{
		UpdatedCount: response.UpdatedCount,
	})
}

// ToggleChannel switches a channel on or off for every type
// @Summary Toggle a delivery channel
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Param channel path string true "push, email or in_app"
// @Param status path string true "enable or disable"
// @Success 200 {object} UpdatedCountDto
// @Failure 400
// @Failure 401
// @Router /api/notifications/preferences/{channel}/{status} [post]
func ToggleChannel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)

	var enable bool
	switch vars["status"] {
	case "enable":
		enable = true
	case "disable":
		enable = false
	default:
		utils.HandleHttpError(w, fmt.Errorf("status must be enable or disable: %w", utils.ErrHttpBadRequest))
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*commands.ToggleChannelResponse](ctx, m, commands.ToggleChannel{
		ProfileId: currentProfileId(r),
		Channel:   notifications.Channel(vars["channel"]),
		Enable:    enable,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, UpdatedCountDto{
		UpdatedCount: response.UpdatedCount,
	})
}
