package commands

import (
	"Keyo/internal/behaviours"
	"Keyo/internal/notifications"
	"Keyo/utils"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type NotifyCommunityInvite struct {
	Actor         notifications.Actor
	InviteeId     uuid.UUID
	CommunityId   string
	CommunityName string
}

func (a NotifyCommunityInvite) LogRequest() bool {
	return true
}

func (a NotifyCommunityInvite) LogResponse() bool {
	return true
}

func (a NotifyCommunityInvite) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return eventPolicy(ctx)
}

func (a NotifyCommunityInvite) GetRequestName() string {
	return "NotifyCommunityInvite"
}

func HandleNotifyCommunityInvite(ctx context.Context, command NotifyCommunityInvite) (*NotifyResponse, error) {
	result := newNotifyResponse()
	if command.Actor.Id == command.InviteeId {
		return result.skip(), nil
	}

	response, err := send(ctx, SendNotification{
		RecipientId: command.InviteeId,
		ActorId:     actorRef(command.Actor),
		TargetType:  targetRef(notifications.TargetCommunity),
		TargetId:    &command.CommunityId,
		Type:        notifications.TypeCommunityInvite,
		Title:       "Community Invitation",
		Message:     fmt.Sprintf("%s invited you to join %s", command.Actor.Name(), command.CommunityName),
		ClickUrl:    utils.Ptr(notifications.CommunityUrl(command.CommunityId)),
		DeepLink: utils.Ptr(notifications.NewDeepLink("community", map[string]any{
			"community_id": command.CommunityId,
			"action":       "join",
		})),
		Priority:  notifications.PriorityHigh,
		SendPush:  true,
		SendEmail: true,
	})
	if err != nil {
		return nil, err
	}

	result.add(response)
	return result, nil
}
