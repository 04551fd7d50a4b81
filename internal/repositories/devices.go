package repositories

import (
	"Keyo/utils"
	"context"
	"time"

	"github.com/google/uuid"
)

type DeviceType string

const (
	DeviceTypeAndroid DeviceType = "android"
	DeviceTypeIos     DeviceType = "ios"
	DeviceTypeWeb     DeviceType = "web"
)

func (t DeviceType) IsValid() bool {
	return t == DeviceTypeAndroid || t == DeviceTypeIos || t == DeviceTypeWeb
}

// Device is a Firebase Cloud Messaging registration token.
type Device struct {
	ModelBase

	profileId  uuid.UUID
	token      string
	deviceType DeviceType
	deviceId   *string
	deviceName *string
	active     bool
	lastUsedAt *time.Time
}

func NewDevice(profileId uuid.UUID, token string, deviceType DeviceType) *Device {
	return &Device{
		ModelBase:  NewModelBase(),
		profileId:  profileId,
		token:      token,
		deviceType: deviceType,
		active:     true,
	}
}

func (d *Device) GetScanPointers() []any {
	return []any{
		&d.id,
		&d.auditCreatedAt,
		&d.auditUpdatedAt,
		&d.version,
		&d.profileId,
		&d.token,
		&d.deviceType,
		&d.deviceId,
		&d.deviceName,
		&d.active,
		&d.lastUsedAt,
	}
}

func (d *Device) ProfileId() uuid.UUID {
	return d.profileId
}

func (d *Device) SetProfileId(profileId uuid.UUID) {
	d.profileId = profileId
	d.TrackChange("profile_id", profileId)
}

func (d *Device) Token() string {
	return d.token
}

func (d *Device) DeviceType() DeviceType {
	return d.deviceType
}

func (d *Device) SetDeviceType(deviceType DeviceType) {
	d.deviceType = deviceType
	d.TrackChange("device_type", deviceType)
}

func (d *Device) DeviceId() *string {
	return d.deviceId
}

func (d *Device) SetDeviceId(deviceId *string) {
	d.deviceId = deviceId
	d.TrackChange("device_id", deviceId)
}

func (d *Device) DeviceName() *string {
	return d.deviceName
}

func (d *Device) SetDeviceName(deviceName *string) {
	d.deviceName = deviceName
	d.TrackChange("device_name", deviceName)
}

func (d *Device) Active() bool {
	return d.active
}

func (d *Device) SetActive(active bool) {
	d.active = active
	d.TrackChange("active", active)
}

func (d *Device) LastUsedAt() *time.Time {
	return d.lastUsedAt
}

func (d *Device) Touch(now time.Time) {
	d.lastUsedAt = &now
	d.TrackChange("last_used_at", now)
}

type DeviceFilter struct {
	profileId *uuid.UUID
	token     *string
	active    *bool
}

func NewDeviceFilter() DeviceFilter {
	return DeviceFilter{}
}

func (f DeviceFilter) Clone() DeviceFilter {
	return f
}

func (f DeviceFilter) ProfileId(profileId uuid.UUID) DeviceFilter {
	filter := f.Clone()
	filter.profileId = &profileId
	return filter
}

func (f DeviceFilter) HasProfileId() bool {
	return f.profileId != nil
}

func (f DeviceFilter) GetProfileId() uuid.UUID {
	return utils.ZeroIfNil(f.profileId)
}

func (f DeviceFilter) Token(token string) DeviceFilter {
	filter := f.Clone()
	filter.token = &token
	return filter
}

func (f DeviceFilter) HasToken() bool {
	return f.token != nil
}

func (f DeviceFilter) GetToken() string {
	return utils.ZeroIfNil(f.token)
}

func (f DeviceFilter) Active(active bool) DeviceFilter {
	filter := f.Clone()
	filter.active = &active
	return filter
}

func (f DeviceFilter) HasActive() bool {
	return f.active != nil
}

func (f DeviceFilter) GetActive() bool {
	return utils.ZeroIfNil(f.active)
}

//go:generate mockgen -destination=./mocks/device_repository.go -package=mocks Keyo/internal/repositories DeviceRepository
type DeviceRepository interface {
	List(ctx context.Context, filter DeviceFilter) ([]*Device, error)
	First(ctx context.Context, filter DeviceFilter) (*Device, error)
	Single(ctx context.Context, filter DeviceFilter) (*Device, error)
	Insert(ctx context.Context, device *Device) error
	Update(ctx context.Context, device *Device) error
}
