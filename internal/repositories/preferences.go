package repositories

import (
	"Keyo/internal/notifications"
	"Keyo/utils"
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type NotificationPreference struct {
	ModelBase

	profileId        uuid.UUID
	notificationType notifications.Type

	inAppEnabled bool
	pushEnabled  bool
	emailEnabled bool
	isEnabled    bool

	customThresholds []int64
}

// NewNotificationPreference starts from the type's default channel settings.
func NewNotificationPreference(profileId uuid.UUID, notificationType notifications.Type) *NotificationPreference {
	defaults := notifications.DefaultSettings(notificationType)
	return &NotificationPreference{
		ModelBase:        NewModelBase(),
		profileId:        profileId,
		notificationType: notificationType,
		inAppEnabled:     defaults.InApp,
		pushEnabled:      defaults.Push,
		emailEnabled:     defaults.Email,
		isEnabled:        defaults.Enabled,
		customThresholds: make([]int64, 0),
	}
}

func (p *NotificationPreference) GetScanPointers() []any {
	return []any{
		&p.id,
		&p.auditCreatedAt,
		&p.auditUpdatedAt,
		&p.version,
		&p.profileId,
		&p.notificationType,
		&p.inAppEnabled,
		&p.pushEnabled,
		&p.emailEnabled,
		&p.isEnabled,
		pq.Array(&p.customThresholds),
	}
}

// IsStored reports whether the preference came from the database.
func (p *NotificationPreference) IsStored() bool {
	return p.id != uuid.Nil
}

func (p *NotificationPreference) ProfileId() uuid.UUID {
	return p.profileId
}

func (p *NotificationPreference) Type() notifications.Type {
	return p.notificationType
}

func (p *NotificationPreference) InAppEnabled() bool {
	return p.inAppEnabled
}

func (p *NotificationPreference) SetInAppEnabled(enabled bool) {
	p.inAppEnabled = enabled
	p.TrackChange("in_app_enabled", enabled)
}

func (p *NotificationPreference) PushEnabled() bool {
	return p.pushEnabled
}

func (p *NotificationPreference) SetPushEnabled(enabled bool) {
	p.pushEnabled = enabled
	p.TrackChange("push_enabled", enabled)
}

func (p *NotificationPreference) EmailEnabled() bool {
	return p.emailEnabled
}

func (p *NotificationPreference) SetEmailEnabled(enabled bool) {
	p.emailEnabled = enabled
	p.TrackChange("email_enabled", enabled)
}

func (p *NotificationPreference) IsEnabled() bool {
	return p.isEnabled
}

func (p *NotificationPreference) SetIsEnabled(enabled bool) {
	p.isEnabled = enabled
	p.TrackChange("is_enabled", enabled)
}

// RecomputeEnabled turns the master switch off when every channel is off and on otherwise.
func (p *NotificationPreference) RecomputeEnabled() {
	p.SetIsEnabled(p.inAppEnabled || p.pushEnabled || p.emailEnabled)
}

func (p *NotificationPreference) CustomThresholds() []int {
	return utils.MapSlice(p.customThresholds, func(t int64) int {
		return int(t)
	})
}

func (p *NotificationPreference) SetCustomThresholds(thresholds []int) {
	p.customThresholds = utils.EmptyIfNil(utils.MapSlice(thresholds, func(t int) int64 {
		return int64(t)
	}))
	p.TrackChange("custom_thresholds", pq.Array(p.customThresholds))
}

func (p *NotificationPreference) Settings() notifications.ChannelSettings {
	return notifications.ChannelSettings{
		InApp:   p.inAppEnabled,
		Push:    p.pushEnabled,
		Email:   p.emailEnabled,
		Enabled: p.isEnabled,
	}
}

type NotificationPreferenceFilter struct {
	profileId *uuid.UUID
	types     []notifications.Type
}

func NewNotificationPreferenceFilter() NotificationPreferenceFilter {
	return NotificationPreferenceFilter{}
}

func (f NotificationPreferenceFilter) Clone() NotificationPreferenceFilter {
	return f
}

func (f NotificationPreferenceFilter) ProfileId(profileId uuid.UUID) NotificationPreferenceFilter {
	filter := f.Clone()
	filter.profileId = &profileId
	return filter
}

func (f NotificationPreferenceFilter) HasProfileId() bool {
	return f.profileId != nil
}

func (f NotificationPreferenceFilter) GetProfileId() uuid.UUID {
	return utils.ZeroIfNil(f.profileId)
}

func (f NotificationPreferenceFilter) Types(types ...notifications.Type) NotificationPreferenceFilter {
	filter := f.Clone()
	filter.types = append([]notifications.Type(nil), types...)
	return filter
}

func (f NotificationPreferenceFilter) HasTypes() bool {
	return len(f.types) > 0
}

func (f NotificationPreferenceFilter) GetTypes() []notifications.Type {
	return f.types
}

//go:generate mockgen -destination=./mocks/notificationpreference_repository.go -package=mocks Keyo/internal/repositories NotificationPreferenceRepository
type NotificationPreferenceRepository interface {
	List(ctx context.Context, filter NotificationPreferenceFilter) ([]*NotificationPreference, error)
	First(ctx context.Context, filter NotificationPreferenceFilter) (*NotificationPreference, error)
	Insert(ctx context.Context, preference *NotificationPreference) error
	Update(ctx context.Context, preference *NotificationPreference) error
}

// EffectivePreference returns the stored preference or the type's defaults when none is stored.
func EffectivePreference(ctx context.Context, repository NotificationPreferenceRepository, profileId uuid.UUID, notificationType notifications.Type) (*NotificationPreference, error) {
	filter := NewNotificationPreferenceFilter().
		ProfileId(profileId).
		Types(notificationType)

	preference, err := repository.First(ctx, filter)
	if err != nil {
		return nil, err
	}
	if preference == nil {
		return NewNotificationPreference(profileId, notificationType), nil
	}

	return preference, nil
}
