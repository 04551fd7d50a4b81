package commands

import (
	"Keyo/internal/behaviours"
	"Keyo/internal/notifications"
	"Keyo/utils"
	"context"

	"github.com/google/uuid"
)

type NotifyFollow struct {
	Actor      notifications.Actor
	FolloweeId uuid.UUID
}

func (a NotifyFollow) LogRequest() bool {
	return true
}

func (a NotifyFollow) LogResponse() bool {
	return true
}

func (a NotifyFollow) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return eventPolicy(ctx)
}

func (a NotifyFollow) GetRequestName() string {
	return "NotifyFollow"
}

func HandleNotifyFollow(ctx context.Context, command NotifyFollow) (*NotifyResponse, error) {
	result := newNotifyResponse()
	if command.Actor.Id == command.FolloweeId {
		return result.skip(), nil
	}

	response, err := send(ctx, SendNotification{
		RecipientId: command.FolloweeId,
		ActorId:     actorRef(command.Actor),
		Type:        notifications.TypeFollow,
		Title:       "New Follower!",
		Message:     command.Actor.Name() + " started following you",
		ClickUrl:    utils.Ptr(notifications.ProfileUrl(command.Actor.Username)),
		DeepLink: utils.Ptr(notifications.NewDeepLink("profile", map[string]any{
			"username": command.Actor.Username,
		})),
		SendPush:  true,
		SendEmail: true,
	})
	if err != nil {
		return nil, err
	}

	result.add(response)
	return result, nil
}
