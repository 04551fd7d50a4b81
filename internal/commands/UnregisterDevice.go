package commands

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/middlewares"
	"Keyo/internal/repositories"
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type UnregisterDevice struct {
	ProfileId uuid.UUID
	Token     string
}

func (a UnregisterDevice) LogRequest() bool {
	return false
}

func (a UnregisterDevice) LogResponse() bool {
	return true
}

func (a UnregisterDevice) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a UnregisterDevice) GetRequestName() string {
	return "UnregisterDevice"
}

type UnregisterDeviceResponse struct{}

func HandleUnregisterDevice(ctx context.Context, command UnregisterDevice) (*UnregisterDeviceResponse, error) {
	scope := middlewares.GetScope(ctx)
	deviceRepository := ioc.GetDependency[repositories.DeviceRepository](scope)

	device, err := deviceRepository.Single(ctx, repositories.NewDeviceFilter().
		Token(command.Token).
		ProfileId(command.ProfileId))
	if err != nil {
		return nil, fmt.Errorf("getting device: %w", err)
	}

	if !device.Active() {
		return &UnregisterDeviceResponse{}, nil
	}

	device.SetActive(false)
	err = deviceRepository.Update(ctx, device)
	if err != nil {
		return nil, fmt.Errorf("updating device: %w", err)
	}

	return &UnregisterDeviceResponse{}, nil
}
