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

type Subscribe struct {
	FollowerId uuid.UUID
	TargetType notifications.TargetType
	TargetId   string

	// Auto marks follows created by the platform, e.g. when a profile comments on a poll.
	Auto bool

	// ContentOwnerId is never subscribed to their own content.
	ContentOwnerId *uuid.UUID
}

func (a Subscribe) LogRequest() bool {
	return true
}

func (a Subscribe) LogResponse() bool {
	return true
}

func (a Subscribe) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.FollowerId, permissions.NotificationManageAny), nil
}

func (a Subscribe) GetRequestName() string {
	return "Subscribe"
}

type SubscribeResponse struct {
	Id      uuid.UUID
	Created bool
	Skipped bool
}

func validateSubscriptionTarget(targetType notifications.TargetType, targetId string) error {
	if !targetType.IsValid() || targetType == notifications.TargetCommunity {
		return fmt.Errorf("cannot follow target type %q: %w", targetType, utils.ErrHttpBadRequest)
	}
	if targetId == "" {
		return fmt.Errorf("missing target id: %w", utils.ErrHttpBadRequest)
	}
	return nil
}

func HandleSubscribe(ctx context.Context, command Subscribe) (*SubscribeResponse, error) {
	err := validateSubscriptionTarget(command.TargetType, command.TargetId)
	if err != nil {
		return nil, err
	}

	if command.ContentOwnerId != nil && *command.ContentOwnerId == command.FollowerId {
		return &SubscribeResponse{Skipped: true}, nil
	}
	if command.TargetType == notifications.TargetProfile && command.TargetId == command.FollowerId.String() {
		return &SubscribeResponse{Skipped: true}, nil
	}

	scope := middlewares.GetScope(ctx)
	subscriptionRepository := ioc.GetDependency[repositories.SubscriptionRepository](scope)

	existing, err := subscriptionRepository.First(ctx, repositories.NewSubscriptionFilter().
		FollowerId(command.FollowerId).
		Target(command.TargetType, command.TargetId))
	if err != nil {
		return nil, fmt.Errorf("getting subscription: %w", err)
	}

	if existing == nil {
		subscription := repositories.NewSubscription(command.FollowerId, command.TargetType, command.TargetId, command.Auto)
		err = subscriptionRepository.Insert(ctx, subscription)
		if err != nil {
			return nil, fmt.Errorf("inserting subscription: %w", err)
		}

		return &SubscribeResponse{
			Id:      subscription.Id(),
			Created: true,
		}, nil
	}

	if !existing.Active() {
		existing.SetActive(true)
		existing.SetAutoFollowed(command.Auto)
	} else if !command.Auto && existing.AutoFollowed() {
		existing.SetAutoFollowed(false)
	}

	if existing.HasChanges() {
		err = subscriptionRepository.Update(ctx, existing)
		if err != nil {
			return nil, fmt.Errorf("updating subscription: %w", err)
		}
	}

	return &SubscribeResponse{
		Id: existing.Id(),
	}, nil
}
