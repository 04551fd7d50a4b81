package commands

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type Unsubscribe struct {
	FollowerId uuid.UUID
	TargetType notifications.TargetType
	TargetId   string
}

func (a Unsubscribe) LogRequest() bool {
	return true
}

func (a Unsubscribe) LogResponse() bool {
	return true
}

func (a Unsubscribe) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.FollowerId, permissions.NotificationManageAny), nil
}

func (a Unsubscribe) GetRequestName() string {
	return "Unsubscribe"
}

type UnsubscribeResponse struct {
	Unsubscribed bool
}

// HandleUnsubscribe deactivates the follow. Unfollowing something that is not
// followed succeeds without changes.
func HandleUnsubscribe(ctx context.Context, command Unsubscribe) (*UnsubscribeResponse, error) {
	err := validateSubscriptionTarget(command.TargetType, command.TargetId)
	if err != nil {
		return nil, err
	}

	scope := middlewares.GetScope(ctx)
	subscriptionRepository := ioc.GetDependency[repositories.SubscriptionRepository](scope)

	subscription, err := subscriptionRepository.First(ctx, repositories.NewSubscriptionFilter().
		FollowerId(command.FollowerId).
		Target(command.TargetType, command.TargetId).
		Active(true))
	if err != nil {
		return nil, fmt.Errorf("getting subscription: %w", err)
	}

	if subscription == nil {
		return &UnsubscribeResponse{}, nil
	}

	subscription.SetActive(false)
	err = subscriptionRepository.Update(ctx, subscription)
	if err != nil {
		return nil, fmt.Errorf("updating subscription: %w", err)
	}

	return &UnsubscribeResponse{
		Unsubscribed: true,
	}, nil
}
