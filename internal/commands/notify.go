package commands

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

// NotifyResponse is returned by every platform event command.
type NotifyResponse struct {
	NotificationIds []uuid.UUID
	Skipped         int
}

func newNotifyResponse() *NotifyResponse {
	return &NotifyResponse{
		NotificationIds: make([]uuid.UUID, 0),
	}
}

func (r *NotifyResponse) skip() *NotifyResponse {
	r.Skipped++
	return r
}

func (r *NotifyResponse) add(response *SendNotificationResponse) {
	if response.Skipped {
		r.Skipped++
		return
	}
	r.NotificationIds = append(r.NotificationIds, response.Id)
}

func eventPolicy(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.RequirePermission(ctx, permissions.EventPublish), nil
}

// send runs SendNotification through the mediator so its policy and logging
// behaviours apply to every notification a platform event creates.
func send(ctx context.Context, command SendNotification) (*SendNotificationResponse, error) {
	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*SendNotificationResponse](ctx, m, command)
	if err != nil {
		return nil, fmt.Errorf("sending %s notification: %w", command.Type, err)
	}

	return response, nil
}

func actorRef(actor notifications.Actor) *uuid.UUID {
	if actor.Id == uuid.Nil {
		return nil
	}
	return &actor.Id
}

func targetRef(targetType notifications.TargetType) *notifications.TargetType {
	return &targetType
}
