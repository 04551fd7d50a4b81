package queries

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/middlewares"
	"Keyo/internal/repositories"
	"Keyo/utils"
	"context"
	"fmt"
	"time"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type ListDevices struct {
	ProfileId uuid.UUID
}

func (a ListDevices) LogRequest() bool {
	return true
}

func (a ListDevices) LogResponse() bool {
	return false
}

func (a ListDevices) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a ListDevices) GetRequestName() string {
	return "ListDevices"
}

type ListDevicesResponse struct {
	Items []ListDevicesResponseItem
}

type ListDevicesResponseItem struct {
	Id         uuid.UUID
	DeviceType repositories.DeviceType
	DeviceId   *string
	DeviceName *string
	LastUsedAt *time.Time
	CreatedAt  time.Time
}

func HandleListDevices(ctx context.Context, query ListDevices) (*ListDevicesResponse, error) {
	scope := middlewares.GetScope(ctx)
	deviceRepository := ioc.GetDependency[repositories.DeviceRepository](scope)

	devices, err := deviceRepository.List(ctx, repositories.NewDeviceFilter().
		ProfileId(query.ProfileId).
		Active(true))
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	items := utils.MapSlice(devices, func(d *repositories.Device) ListDevicesResponseItem {
		return ListDevicesResponseItem{
			Id:         d.Id(),
			DeviceType: d.DeviceType(),
			DeviceId:   d.DeviceId(),
			DeviceName: d.DeviceName(),
			LastUsedAt: d.LastUsedAt(),
			CreatedAt:  d.AuditCreatedAt(),
		}
	})

	return &ListDevicesResponse{
		Items: utils.EmptyIfNil(items),
	}, nil
}
