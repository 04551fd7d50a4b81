package commands

import (
	"Keyo/internal/behaviours"
	"Keyo/internal/notifications"
	"Keyo/utils"
	"context"

	"github.com/google/uuid"
)

type NotifyCommentReply struct {
	Actor          notifications.Actor
	PollId         string
	CommentId      string
	CommentOwnerId uuid.UUID
	ReplyId        string
}

func (a NotifyCommentReply) LogRequest() bool {
	return true
}

func (a NotifyCommentReply) LogResponse() bool {
	return true
}

func (a NotifyCommentReply) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return eventPolicy(ctx)
}

func (a NotifyCommentReply) GetRequestName() string {
	return "NotifyCommentReply"
}

func HandleNotifyCommentReply(ctx context.Context, command NotifyCommentReply) (*NotifyResponse, error) {
	result := newNotifyResponse()
	if command.Actor.Id == command.CommentOwnerId {
		return result.skip(), nil
	}

	response, err := send(ctx, SendNotification{
		RecipientId: command.CommentOwnerId,
		ActorId:     actorRef(command.Actor),
		TargetType:  targetRef(notifications.TargetComment),
		TargetId:    &command.CommentId,
		Type:        notifications.TypeReply,
		Title:       "New Reply!",
		Message:     command.Actor.Name() + " replied to your comment",
		ClickUrl:    utils.Ptr(notifications.CommentUrl(command.PollId, command.ReplyId)),
		DeepLink: utils.Ptr(notifications.NewDeepLink("poll", map[string]any{
			"poll_id":           command.PollId,
			"comment_id":        command.ReplyId,
			"parent_comment_id": command.CommentId,
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
