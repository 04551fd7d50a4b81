package commands

import (
	"Keyo/internal/behaviours"
	"Keyo/internal/notifications"
	"Keyo/utils"
	"context"

	"github.com/google/uuid"
)

// NotifyCommunityNewPoll fans a new community poll out to the members the
// platform lists. Push is opt-in per event.
type NotifyCommunityNewPoll struct {
	Actor         notifications.Actor
	CommunityId   string
	CommunityName string
	PollId        string
	PollTitle     string
	MemberIds     []uuid.UUID
	SendPush      bool
}

func (a NotifyCommunityNewPoll) LogRequest() bool {
	return true
}

func (a NotifyCommunityNewPoll) LogResponse() bool {
	return true
}

func (a NotifyCommunityNewPoll) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return eventPolicy(ctx)
}

func (a NotifyCommunityNewPoll) GetRequestName() string {
	return "NotifyCommunityNewPoll"
}

func HandleNotifyCommunityNewPoll(ctx context.Context, command NotifyCommunityNewPoll) (*NotifyResponse, error) {
	result := newNotifyResponse()

	seen := make(map[uuid.UUID]struct{}, len(command.MemberIds))
	for _, memberId := range command.MemberIds {
		if memberId == command.Actor.Id {
			continue
		}
		if _, ok := seen[memberId]; ok {
			continue
		}
		seen[memberId] = struct{}{}

		response, err := send(ctx, SendNotification{
			RecipientId: memberId,
			ActorId:     actorRef(command.Actor),
			TargetType:  targetRef(notifications.TargetPoll),
			TargetId:    &command.PollId,
			Type:        notifications.TypeCommunityNewPoll,
			Title:       "New Poll in " + command.CommunityName,
			Message:     command.Actor.Name() + " created a new poll: " + command.PollTitle,
			ClickUrl:    utils.Ptr(notifications.PollUrl(command.PollId)),
			DeepLink: utils.Ptr(notifications.NewDeepLink("poll", map[string]any{
				"poll_id": command.PollId,
				"source":  "community",
			})),
			ExtraData: map[string]any{
				"community_id":   command.CommunityId,
				"community_name": command.CommunityName,
			},
			SendPush: command.SendPush,
		})
		if err != nil {
			return nil, err
		}

		result.add(response)
	}

	return result, nil
}
