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

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type RegisterDevice struct {
	ProfileId  uuid.UUID
	Token      string
	DeviceType repositories.DeviceType
	DeviceId   *string
	DeviceName *string
}

func (a RegisterDevice) LogRequest() bool {
	return false
}

func (a RegisterDevice) LogResponse() bool {
	return true
}

func (a RegisterDevice) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a RegisterDevice) GetRequestName() string {
	return "RegisterDevice"
}

type RegisterDeviceResponse struct {
	Id      uuid.UUID
	Created bool
}

// HandleRegisterDevice stores the FCM token. A token registered before, by
// this or another profile, moves to the caller and becomes active again.
func HandleRegisterDevice(ctx context.Context, command RegisterDevice) (*RegisterDeviceResponse, error) {
	if command.Token == "" {
		return nil, fmt.Errorf("missing device token: %w", utils.ErrHttpBadRequest)
	}
	if !command.DeviceType.IsValid() {
		return nil, fmt.Errorf("unknown device type %q: %w", command.DeviceType, utils.ErrHttpBadRequest)
	}

	scope := middlewares.GetScope(ctx)
	deviceRepository := ioc.GetDependency[repositories.DeviceRepository](scope)
	clockService := ioc.GetDependency[clock.Service](scope)

	device, err := deviceRepository.First(ctx, repositories.NewDeviceFilter().Token(command.Token))
	if err != nil {
		return nil, fmt.Errorf("getting device: %w", err)
	}

	if device == nil {
		device = repositories.NewDevice(command.ProfileId, command.Token, command.DeviceType)
		device.SetDeviceId(command.DeviceId)
		device.SetDeviceName(command.DeviceName)
		device.Touch(clockService.Now())

		err = deviceRepository.Insert(ctx, device)
		if err != nil {
			return nil, fmt.Errorf("inserting device: %w", err)
		}

		return &RegisterDeviceResponse{
			Id:      device.Id(),
			Created: true,
		}, nil
	}

	if device.ProfileId() != command.ProfileId {
		device.SetProfileId(command.ProfileId)
	}
	device.SetDeviceType(command.DeviceType)
	device.SetDeviceId(command.DeviceId)
	device.SetDeviceName(command.DeviceName)
	device.SetActive(true)
	device.Touch(clockService.Now())

	err = deviceRepository.Update(ctx, device)
	if err != nil {
		return nil, fmt.Errorf("updating device: %w", err)
	}

	return &RegisterDeviceResponse{
		Id: device.Id(),
	}, nil
}
