package handlers

import (
	"Keyo/internal/commands"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"Keyo/internal/queries"
	"Keyo/internal/repositories"
	"Keyo/utils"
	"net/http"
	"time"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type DeviceDto struct {
	Id         uuid.UUID               `json:"id"`
	DeviceType repositories.DeviceType `json:"deviceType"`
	DeviceId   *string                 `json:"deviceId"`
	DeviceName *string                 `json:"deviceName"`
	LastUsedAt *time.Time              `json:"lastUsedAt"`
	CreatedAt  time.Time               `json:"createdAt"`
}

type ListDevicesResponseDto struct {
	Items []DeviceDto `json:"items"`
}

// ListDevices lists the caller's active push devices
// @Summary List push devices
// @Tags Devices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListDevicesResponseDto
// @Failure 401
// @Router /api/notifications/devices [get]
func ListDevices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*queries.ListDevicesResponse](ctx, m, queries.ListDevices{
		ProfileId: currentProfileId(r),
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, ListDevicesResponseDto{
		Items: utils.EmptyIfNil(utils.MapSlice(response.Items, func(x queries.ListDevicesResponseItem) DeviceDto {
			return DeviceDto{
				Id:         x.Id,
				DeviceType: x.DeviceType,
				DeviceId:   x.DeviceId,
				DeviceName: x.DeviceName,
				LastUsedAt: x.LastUsedAt,
				CreatedAt:  x.CreatedAt,
			}
		})),
	})
}

type RegisterDeviceRequestDto struct {
	Token      string  `json:"token" validate:"required,max=4096"`
	DeviceType string  `json:"deviceType" validate:"required,oneof=android ios web"`
	DeviceId   *string `json:"deviceId" validate:"omitempty,max=255"`
	DeviceName *string `json:"deviceName" validate:"omitempty,max=255"`
}

type RegisterDeviceResponseDto struct {
	Id      uuid.UUID `json:"id"`
	Created bool      `json:"created"`
}

// RegisterDevice stores an FCM registration token
// @Summary Register push device
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterDeviceRequestDto true "Device data"
// @Success 201 {object} RegisterDeviceResponseDto
// @Success 200 {object} RegisterDeviceResponseDto
// @Failure 400
// @Failure 401
// @Router /api/notifications/devices [post]
func RegisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dto, err := decodeDto[RegisterDeviceRequestDto](r)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*commands.RegisterDeviceResponse](ctx, m, commands.RegisterDevice{
		ProfileId:  currentProfileId(r),
		Token:      dto.Token,
		DeviceType: repositories.DeviceType(dto.DeviceType),
		DeviceId:   dto.DeviceId,
		DeviceName: dto.DeviceName,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	status := http.StatusOK
	if response.Created {
		status = http.StatusCreated
	}

	writeJson(w, status, RegisterDeviceResponseDto{
		Id:      response.Id,
		Created: response.Created,
	})
}

type UnregisterDeviceRequestDto struct {
	Token string `json:"token" validate:"required"`
}

// UnregisterDevice deactivates an FCM registration token
// @Summary Unregister push device
// @Tags Devices
// @Accept json
// @Security BearerAuth
// @Param request body UnregisterDeviceRequestDto true "Device token"
// @Success 204
// @Failure 400
// @Failure 401
// @Failure 404
// @Router /api/notifications/devices/unregister [post]
func UnregisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dto, err := decodeDto[UnregisterDeviceRequestDto](r)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	_, err = mediator.Send[*commands.UnregisterDeviceResponse](ctx, m, commands.UnregisterDevice{
		ProfileId: currentProfileId(r),
		Token:     dto.Token,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
