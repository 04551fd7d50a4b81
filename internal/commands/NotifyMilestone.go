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

// NotifyMilestone reports a counter reaching a new value. Only counts that hit
// one of the recipient's thresholds produce a notification.
type NotifyMilestone struct {
	RecipientId uuid.UUID
	Kind        notifications.MilestoneKind
	Type        notifications.Type
	Count       int

	// Username addresses profile milestones.
	Username  string
	PollId    string
	CommentId string
}

func (a NotifyMilestone) LogRequest() bool {
	return true
}

func (a NotifyMilestone) LogResponse() bool {
	return true
}

func (a NotifyMilestone) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return eventPolicy(ctx)
}

func (a NotifyMilestone) GetRequestName() string {
	return "NotifyMilestone"
}

func HandleNotifyMilestone(ctx context.Context, command NotifyMilestone) (*NotifyResponse, error) {
	if !command.Kind.IsValid() {
		return nil, fmt.Errorf("unknown milestone kind %q: %w", command.Kind, utils.ErrHttpBadRequest)
	}
	if !notifications.IsMilestone(command.Type) {
		return nil, fmt.Errorf("%w: %q is not a milestone", utils.ErrInvalidNotificationType, command.Type)
	}

	scope := middlewares.GetScope(ctx)
	result := newNotifyResponse()

	preferenceRepository := ioc.GetDependency[repositories.NotificationPreferenceRepository](scope)
	preference, err := repositories.EffectivePreference(ctx, preferenceRepository, command.RecipientId, command.Type)
	if err != nil {
		return nil, fmt.Errorf("getting notification preference: %w", err)
	}

	if !preference.IsEnabled() {
		return result.skip(), nil
	}
	if !notifications.ReachesThreshold(command.Type, command.Count, preference.CustomThresholds()) {
		return result.skip(), nil
	}

	request := SendNotification{
		RecipientId: command.RecipientId,
		Type:        command.Type,
		Title:       notifications.MilestoneTitle,
		Message:     notifications.MilestoneMessage(command.Kind, command.Type, command.Count),
		ExtraData: map[string]any{
			"milestone_count": command.Count,
		},
		Priority:  notifications.PriorityHigh,
		SendPush:  true,
		SendEmail: true,
	}

	switch command.Kind {
	case notifications.MilestoneProfile:
		request.ClickUrl = utils.Ptr(notifications.FollowersUrl(command.Username))
		request.DeepLink = utils.Ptr(notifications.NewDeepLink("followers", map[string]any{
			"username": command.Username,
		}))
	case notifications.MilestonePoll:
		request.TargetType = targetRef(notifications.TargetPoll)
		request.TargetId = &command.PollId
		request.ClickUrl = utils.Ptr(notifications.PollUrl(command.PollId))
		request.DeepLink = utils.Ptr(notifications.NewDeepLink("poll", map[string]any{
			"poll_id": command.PollId,
		}))
	case notifications.MilestoneComment:
		request.TargetType = targetRef(notifications.TargetComment)
		request.TargetId = &command.CommentId
		request.ClickUrl = utils.Ptr(notifications.CommentUrl(command.PollId, command.CommentId))
		request.DeepLink = utils.Ptr(notifications.NewDeepLink("poll", map[string]any{
			"poll_id":    command.PollId,
			"comment_id": command.CommentId,
		}))
	}

	response, err := send(ctx, request)
	if err != nil {
		return nil, err
	}

	result.add(response)
	return result, nil
}
