package commands

import (
	"Keyo/internal/behaviours"
	"Keyo/internal/notifications"
	"Keyo/utils"
	"context"

	"github.com/google/uuid"
)

type NotifyPollVote struct {
	Actor       notifications.Actor
	PollId      string
	PollOwnerId uuid.UUID
	OptionId    string
	OptionText  string
}

func (a NotifyPollVote) LogRequest() bool {
	return true
}

func (a NotifyPollVote) LogResponse() bool {
	return true
}

func (a NotifyPollVote) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return eventPolicy(ctx)
}

func (a NotifyPollVote) GetRequestName() string {
	return "NotifyPollVote"
}

func HandleNotifyPollVote(ctx context.Context, command NotifyPollVote) (*NotifyResponse, error) {
	result := newNotifyResponse()
	if command.Actor.Id == command.PollOwnerId {
		return result.skip(), nil
	}

	extraData := map[string]any{}
	if command.OptionId != "" {
		extraData["option_id"] = command.OptionId
		extraData["option_text"] = command.OptionText
	}

	response, err := send(ctx, SendNotification{
		RecipientId: command.PollOwnerId,
		ActorId:     actorRef(command.Actor),
		TargetType:  targetRef(notifications.TargetPoll),
		TargetId:    &command.PollId,
		Type:        notifications.TypePollVote,
		Title:       "New Vote!",
		Message:     command.Actor.Name() + " voted on your poll",
		ClickUrl:    utils.Ptr(notifications.PollUrl(command.PollId)),
		DeepLink: utils.Ptr(notifications.NewDeepLink("poll", map[string]any{
			"poll_id": command.PollId,
		})),
		ExtraData: extraData,
		SendPush:  true,
		SendEmail: true,
	})
	if err != nil {
		return nil, err
	}

	result.add(response)
	return result, nil
}
