package handlers

import (
	"Keyo/internal/commands"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/utils"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

// Platform event names accepted by PublishPlatformEvent. The payload keys are
// the fields of the command the event maps to.
const (
	EventPollCommented       = "poll.commented"
	EventPollVoted           = "poll.voted"
	EventCommentReplied      = "comment.replied"
	EventProfileFollowed     = "profile.followed"
	EventProfileMentioned    = "profile.mentioned"
	EventCommunityInvited    = "community.invited"
	EventCommunityPollPosted = "community.poll_created"
	EventMilestoneReached    = "milestone.reached"
	EventContentCreated      = "content.created"
	EventProfileUpdated      = "profile.updated"
	EventContentFollowed     = "content.followed"
	EventContentUnfollowed   = "content.unfollowed"
)

type eventDispatcher func(ctx context.Context, m mediator.Mediator, payload json.RawMessage) (*commands.NotifyResponse, error)

var eventDispatchers = map[string]eventDispatcher{
	EventPollCommented:       notifyDispatcher[commands.NotifyPollComment](),
	EventPollVoted:           notifyDispatcher[commands.NotifyPollVote](),
	EventCommentReplied:      notifyDispatcher[commands.NotifyCommentReply](),
	EventProfileFollowed:     notifyDispatcher[commands.NotifyFollow](),
	EventProfileMentioned:    notifyDispatcher[commands.NotifyMention](),
	EventCommunityInvited:    notifyDispatcher[commands.NotifyCommunityInvite](),
	EventCommunityPollPosted: notifyDispatcher[commands.NotifyCommunityNewPoll](),
	EventMilestoneReached:    notifyDispatcher[commands.NotifyMilestone](),
	EventContentCreated:      notifyDispatcher[commands.NotifyFollowers](),
	EventProfileUpdated:      commandDispatcher[commands.UpsertProfile, *commands.UpsertProfileResponse](),
	EventContentFollowed:     commandDispatcher[commands.Subscribe, *commands.SubscribeResponse](),
	EventContentUnfollowed:   commandDispatcher[commands.Unsubscribe, *commands.UnsubscribeResponse](),
}

func decodePayload[T any](payload json.RawMessage) (T, error) {
	var command T
	err := json.Unmarshal(payload, &command)
	if err != nil {
		return command, fmt.Errorf("decoding event payload: %s: %w", err.Error(), utils.ErrHttpBadRequest)
	}
	return command, nil
}

func notifyDispatcher[T any]() eventDispatcher {
	return func(ctx context.Context, m mediator.Mediator, payload json.RawMessage) (*commands.NotifyResponse, error) {
		command, err := decodePayload[T](payload)
		if err != nil {
			return nil, err
		}
		return mediator.Send[*commands.NotifyResponse](ctx, m, command)
	}
}

// commandDispatcher handles events that change state without notifying anyone.
func commandDispatcher[T any, TResponse any]() eventDispatcher {
	return func(ctx context.Context, m mediator.Mediator, payload json.RawMessage) (*commands.NotifyResponse, error) {
		command, err := decodePayload[T](payload)
		if err != nil {
			return nil, err
		}

		_, err = mediator.Send[TResponse](ctx, m, command)
		if err != nil {
			return nil, err
		}

		return &commands.NotifyResponse{NotificationIds: make([]uuid.UUID, 0)}, nil
	}
}

type PlatformEventRequestDto struct {
	EventType string          `json:"eventType" validate:"required"`
	Payload   json.RawMessage `json:"payload" validate:"required" swaggertype:"object"`
}

type PlatformEventResponseDto struct {
	EventType       string      `json:"eventType"`
	NotificationIds []uuid.UUID `json:"notificationIds"`
	Skipped         int         `json:"skipped"`
}

// PublishPlatformEvent turns a platform event into notifications
// @Summary Publish platform event
// @Description Internal endpoint for the Keyo platform. Requires the service key.
// @Tags Internal
// @Accept json
// @Produce json
// @Security ServiceKey
// @Param request body PlatformEventRequestDto true "Event"
// @Success 202 {object} PlatformEventResponseDto
// @Failure 400
// @Failure 401
// @Router /internal/events [post]
func PublishPlatformEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dto, err := decodeDto[PlatformEventRequestDto](r)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	dispatch, ok := eventDispatchers[dto.EventType]
	if !ok {
		utils.HandleHttpError(w, fmt.Errorf("unknown event type %q: %w", dto.EventType, utils.ErrHttpBadRequest))
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := dispatch(ctx, m, dto.Payload)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusAccepted, PlatformEventResponseDto{
		EventType:       dto.EventType,
		NotificationIds: utils.EmptyIfNil(response.NotificationIds),
		Skipped:         response.Skipped,
	})
}

type ContactDto struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email" validate:"omitempty,email"`
}

type SendNotificationRequestDto struct {
	RecipientId uuid.UUID               `json:"recipientId" validate:"required"`
	Recipient   *ContactDto             `json:"recipient"`
	ActorId     *uuid.UUID              `json:"actorId"`
	TargetType  *string                 `json:"targetType" validate:"omitempty,oneof=poll comment profile community"`
	TargetId    *string                 `json:"targetId"`
	Type        string                  `json:"notificationType" validate:"required"`
	Title       string                  `json:"title" validate:"required,max=255"`
	Message     string                  `json:"message" validate:"required"`
	ClickUrl    *string                 `json:"clickUrl" validate:"omitempty,max=2048"`
	DeepLink    *notifications.DeepLink `json:"deepLinkData"`
	ExtraData   map[string]any          `json:"extraData"`
	Priority    string                  `json:"priority"`
	SendPush    bool                    `json:"sendPush"`
	SendEmail   bool                    `json:"sendEmail"`
	ExpiresAt   *time.Time              `json:"expiresAt"`
}

type SendNotificationResponseDto struct {
	Id      *uuid.UUID `json:"id"`
	Skipped bool       `json:"skipped"`
}

// SendNotification creates a notification for one recipient
// @Summary Send notification
// @Description Internal endpoint for the Keyo platform. Requires the service key.
// @Tags Internal
// @Accept json
// @Produce json
// @Security ServiceKey
// @Param request body SendNotificationRequestDto true "Notification"
// @Success 201 {object} SendNotificationResponseDto
// @Success 200 {object} SendNotificationResponseDto "Skipped by the recipient's preferences"
// @Failure 400
// @Failure 401
// @Router /internal/notifications [post]
func SendNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dto, err := decodeDto[SendNotificationRequestDto](r)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	priority := notifications.PriorityNormal
	if dto.Priority != "" {
		priority = notifications.Priority(dto.Priority)
	}

	command := commands.SendNotification{
		RecipientId: dto.RecipientId,
		ActorId:     dto.ActorId,
		TargetType:  utils.MapPtr(dto.TargetType, func(x string) notifications.TargetType { return notifications.TargetType(x) }),
		TargetId:    dto.TargetId,
		Type:        notifications.Type(dto.Type),
		Title:       dto.Title,
		Message:     dto.Message,
		ClickUrl:    dto.ClickUrl,
		DeepLink:    dto.DeepLink,
		ExtraData:   dto.ExtraData,
		Priority:    priority,
		SendPush:    dto.SendPush,
		SendEmail:   dto.SendEmail,
		ExpiresAt:   dto.ExpiresAt,
	}
	if dto.Recipient != nil {
		command.Recipient = &commands.Contact{
			Username:    dto.Recipient.Username,
			DisplayName: dto.Recipient.DisplayName,
			Email:       dto.Recipient.Email,
		}
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*commands.SendNotificationResponse](ctx, m, command)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	if response.Skipped {
		writeJson(w, http.StatusOK, SendNotificationResponseDto{Skipped: true})
		return
	}

	writeJson(w, http.StatusCreated, SendNotificationResponseDto{
		Id: &response.Id,
	})
}
