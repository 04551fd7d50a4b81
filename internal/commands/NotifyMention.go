package commands

import (
	"Keyo/internal/behaviours"
	"Keyo/internal/notifications"
	"Keyo/utils"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type NotifyMention struct {
	Actor       notifications.Actor
	MentionedId uuid.UUID
	TargetType  notifications.TargetType
	PollId      string

	// CommentId is required when the mention is inside a comment.
	CommentId string
}

func (a NotifyMention) LogRequest() bool {
	return true
}

func (a NotifyMention) LogResponse() bool {
	return true
}

func (a NotifyMention) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return eventPolicy(ctx)
}

func (a NotifyMention) GetRequestName() string {
	return "NotifyMention"
}

func HandleNotifyMention(ctx context.Context, command NotifyMention) (*NotifyResponse, error) {
	result := newNotifyResponse()
	if command.Actor.Id == command.MentionedId {
		return result.skip(), nil
	}

	request := SendNotification{
		RecipientId: command.MentionedId,
		ActorId:     actorRef(command.Actor),
		TargetType:  targetRef(command.TargetType),
		Type:        notifications.TypeMention,
		Title:       "You were mentioned!",
		ExtraData: map[string]any{
			"target_type": string(command.TargetType),
		},
		Priority:  notifications.PriorityHigh,
		SendPush:  true,
		SendEmail: true,
	}

	switch command.TargetType {
	case notifications.TargetPoll:
		request.TargetId = &command.PollId
		request.Message = command.Actor.Name() + " mentioned you in a poll"
		request.ClickUrl = utils.Ptr(notifications.PollUrl(command.PollId))
		request.DeepLink = utils.Ptr(notifications.NewDeepLink("poll", map[string]any{
			"poll_id":   command.PollId,
			"highlight": "mention",
		}))
	case notifications.TargetComment:
		request.TargetId = &command.CommentId
		request.Message = command.Actor.Name() + " mentioned you in a comment"
		request.ClickUrl = utils.Ptr(notifications.CommentUrl(command.PollId, command.CommentId))
		request.DeepLink = utils.Ptr(notifications.NewDeepLink("poll", map[string]any{
			"poll_id":    command.PollId,
			"comment_id": command.CommentId,
			"highlight":  "mention",
		}))
	default:
		return nil, fmt.Errorf("mentions need a poll or comment target, got %q: %w", command.TargetType, utils.ErrHttpBadRequest)
	}

	response, err := send(ctx, request)
	if err != nil {
		return nil, err
	}

	result.add(response)
	return result, nil
}
