package repositories

import (
	"Keyo/internal/notifications"
	"Keyo/utils"
	"context"

	"github.com/google/uuid"
)

// Subscription is a profile following a poll, a comment or another profile.
type Subscription struct {
	ModelBase

	followerId   uuid.UUID
	targetType   notifications.TargetType
	targetId     string
	active       bool
	autoFollowed bool
}

func NewSubscription(followerId uuid.UUID, targetType notifications.TargetType, targetId string, autoFollowed bool) *Subscription {
	return &Subscription{
		ModelBase:    NewModelBase(),
		followerId:   followerId,
		targetType:   targetType,
		targetId:     targetId,
		active:       true,
		autoFollowed: autoFollowed,
	}
}

func (s *Subscription) GetScanPointers() []any {
	return []any{
		&s.id,
		&s.auditCreatedAt,
		&s.auditUpdatedAt,
		&s.version,
		&s.followerId,
		&s.targetType,
		&s.targetId,
		&s.active,
		&s.autoFollowed,
	}
}

func (s *Subscription) FollowerId() uuid.UUID {
	return s.followerId
}

func (s *Subscription) TargetType() notifications.TargetType {
	return s.targetType
}

func (s *Subscription) TargetId() string {
	return s.targetId
}

func (s *Subscription) Active() bool {
	return s.active
}

func (s *Subscription) SetActive(active bool) {
	s.active = active
	s.TrackChange("active", active)
}

func (s *Subscription) AutoFollowed() bool {
	return s.autoFollowed
}

func (s *Subscription) SetAutoFollowed(autoFollowed bool) {
	s.autoFollowed = autoFollowed
	s.TrackChange("auto_followed", autoFollowed)
}

type SubscriptionFilter struct {
	followerId *uuid.UUID
	targetType *notifications.TargetType
	targetId   *string
	active     *bool
}

func NewSubscriptionFilter() SubscriptionFilter {
	return SubscriptionFilter{}
}

func (f SubscriptionFilter) Clone() SubscriptionFilter {
	return f
}

func (f SubscriptionFilter) FollowerId(followerId uuid.UUID) SubscriptionFilter {
	filter := f.Clone()
	filter.followerId = &followerId
	return filter
}

func (f SubscriptionFilter) HasFollowerId() bool {
	return f.followerId != nil
}

func (f SubscriptionFilter) GetFollowerId() uuid.UUID {
	return utils.ZeroIfNil(f.followerId)
}

func (f SubscriptionFilter) Target(targetType notifications.TargetType, targetId string) SubscriptionFilter {
	filter := f.Clone()
	filter.targetType = &targetType
	filter.targetId = &targetId
	return filter
}

func (f SubscriptionFilter) HasTarget() bool {
	return f.targetType != nil && f.targetId != nil
}

func (f SubscriptionFilter) GetTargetType() notifications.TargetType {
	return utils.ZeroIfNil(f.targetType)
}

func (f SubscriptionFilter) GetTargetId() string {
	return utils.ZeroIfNil(f.targetId)
}

func (f SubscriptionFilter) Active(active bool) SubscriptionFilter {
	filter := f.Clone()
	filter.active = &active
	return filter
}

func (f SubscriptionFilter) HasActive() bool {
	return f.active != nil
}

func (f SubscriptionFilter) GetActive() bool {
	return utils.ZeroIfNil(f.active)
}

//go:generate mockgen -destination=./mocks/subscription_repository.go -package=mocks Keyo/internal/repositories SubscriptionRepository
type SubscriptionRepository interface {
	List(ctx context.Context, filter SubscriptionFilter) ([]*Subscription, error)
	First(ctx context.Context, filter SubscriptionFilter) (*Subscription, error)
	Insert(ctx context.Context, subscription *Subscription) error
	Update(ctx context.Context, subscription *Subscription) error
}
