package commands

import (
	"Keyo/internal/behaviours"
	"Keyo/internal/notifications"
	"Keyo/utils"
	"context"

	"github.com/google/uuid"
)

type NotifyPollComment struct {
	Actor       notifications.Actor
	PollId      string
	PollOwnerId uuid.UUID
	CommentId   string
}

func (a NotifyPollComment) LogRequest() bool {
	return true
}

func (a NotifyPollComment) LogResponse() bool {
	return true
}

func (a NotifyPollComment) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return eventPolicy(ctx)
}

func (a NotifyPollComment) GetRequestName() string {
	return "NotifyPollComment"
}

func HandleNotifyPollComment(ctx context.Context, command NotifyPollComment) (*NotifyResponse, error) {
	result := newNotifyResponse()
	if command.Actor.Id == command.PollOwnerId {
		return result.skip(), nil
	}

	response, err := send(ctx, SendNotification{
		RecipientId: command.PollOwnerId,
		ActorId:     actorRef(command.Actor),
		TargetType:  targetRef(notifications.TargetPoll),
		TargetId:    &command.PollId,
		Type:        notifications.TypePollComment,
		Title:       "New Comment!",
		Message:     command.Actor.Name() + " commented on your poll",
		ClickUrl:    utils.Ptr(notifications.CommentUrl(command.PollId, command.CommentId)),
		DeepLink: utils.Ptr(notifications.NewDeepLink("poll", map[string]any{
			"poll_id":    command.PollId,
			"comment_id": command.CommentId,
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
