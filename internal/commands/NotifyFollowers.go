package commands

import (
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

// NotifyFollowers notifies the active subscribers of a profile, poll or
// comment. Type selects the followed target:
//   - followed_user_poll: followers of the actor's profile
//   - followed_poll_comment: followers of the poll
//   - followed_comment_reply: followers of the comment
//
// The actor and the content owner are never notified; the owner already gets
// the direct notification.
type NotifyFollowers struct {
	Actor     notifications.Actor
	Type      notifications.Type
	OwnerId   uuid.UUID
	PollId    string
	PollTitle string
	CommentId string
	ReplyId   string
}

func (a NotifyFollowers) LogRequest() bool {
	return true
}

func (a NotifyFollowers) LogResponse() bool {
	return true
}

func (a NotifyFollowers) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return eventPolicy(ctx)
}

func (a NotifyFollowers) GetRequestName() string {
	return "NotifyFollowers"
}

func HandleNotifyFollowers(ctx context.Context, command NotifyFollowers) (*NotifyResponse, error) {
	template, targetType, targetId, err := followerNotification(command)
	if err != nil {
		return nil, err
	}

	scope := middlewares.GetScope(ctx)
	subscriptionRepository := ioc.GetDependency[repositories.SubscriptionRepository](scope)
	subscriptions, err := subscriptionRepository.List(ctx, repositories.NewSubscriptionFilter().
		Target(targetType, targetId).
		Active(true))
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	result := newNotifyResponse()
	for _, subscription := range subscriptions {
		followerId := subscription.FollowerId()
		if followerId == command.Actor.Id || followerId == command.OwnerId {
			continue
		}

		request := template
		request.RecipientId = followerId

		response, err := send(ctx, request)
		if err != nil {
			return nil, err
		}

		result.add(response)
	}

	return result, nil
}

func followerNotification(command NotifyFollowers) (SendNotification, notifications.TargetType, string, error) {
	request := SendNotification{
		ActorId:   actorRef(command.Actor),
		Type:      command.Type,
		SendPush:  true,
		SendEmail: false,
	}

	switch command.Type {
	case notifications.TypeFollowedUserPoll:
		request.TargetType = targetRef(notifications.TargetPoll)
		request.TargetId = &command.PollId
		request.Title = "New Poll from Someone You Follow"
		request.Message = command.Actor.Name() + " created a new poll: " + command.PollTitle
		request.ClickUrl = utils.Ptr(notifications.PollUrl(command.PollId))
		request.DeepLink = utils.Ptr(notifications.NewDeepLink("poll", map[string]any{
			"poll_id": command.PollId,
			"source":  "followed_user",
		}))
		return request, notifications.TargetProfile, command.Actor.Id.String(), nil

	case notifications.TypeFollowedPollComment:
		request.TargetType = targetRef(notifications.TargetPoll)
		request.TargetId = &command.PollId
		request.Title = "New Comment on Followed Poll"
		request.Message = command.Actor.Name() + " commented on a poll you're following"
		request.ClickUrl = utils.Ptr(notifications.CommentUrl(command.PollId, command.CommentId))
		request.DeepLink = utils.Ptr(notifications.NewDeepLink("poll", map[string]any{
			"poll_id":    command.PollId,
			"comment_id": command.CommentId,
			"source":     "followed_poll",
		}))
		return request, notifications.TargetPoll, command.PollId, nil

	case notifications.TypeFollowedCommentReply:
		request.TargetType = targetRef(notifications.TargetComment)
		request.TargetId = &command.CommentId
		request.Title = "New Reply on Followed Comment"
		request.Message = command.Actor.Name() + " replied to a comment you're following"
		request.ClickUrl = utils.Ptr(notifications.CommentUrl(command.PollId, command.ReplyId))
		request.DeepLink = utils.Ptr(notifications.NewDeepLink("poll", map[string]any{
			"poll_id":           command.PollId,
			"comment_id":        command.ReplyId,
			"parent_comment_id": command.CommentId,
			"source":            "followed_comment",
		}))
		request.ExtraData = map[string]any{
			"reply_id": command.ReplyId,
		}
		return request, notifications.TargetComment, command.CommentId, nil

	default:
		return SendNotification{}, "", "", fmt.Errorf("%w: %q has no followers to notify", utils.ErrInvalidNotificationType, command.Type)
	}
}
