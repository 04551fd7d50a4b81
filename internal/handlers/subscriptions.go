package handlers

import (
	"Keyo/internal/commands"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/utils"
	"net/http"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type SubscriptionRequestDto struct {
	TargetType string `json:"targetType" validate:"required,oneof=poll comment profile"`
	TargetId   string `json:"targetId" validate:"required,max=255"`
}

type SubscribeResponseDto struct {
	Id      uuid.UUID `json:"id"`
	Created bool      `json:"created"`
}

// Subscribe follows a poll, a comment thread or a profile
// @Summary Follow content
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubscriptionRequestDto true "Target to follow"
// @Success 200 {object} SubscribeResponseDto
// @Failure 400
// @Failure 401
// @Router /api/notifications/subscriptions [post]
func Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dto, err := decodeDto[SubscriptionRequestDto](r)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*commands.SubscribeResponse](ctx, m, commands.Subscribe{
		FollowerId: currentProfileId(r),
		TargetType: notifications.TargetType(dto.TargetType),
		TargetId:   dto.TargetId,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, SubscribeResponseDto{
		Id:      response.Id,
		Created: response.Created,
	})
}

type UnsubscribeResponseDto struct {
	Unsubscribed bool `json:"unsubscribed"`
}

// Unsubscribe stops following a poll, a comment thread or a profile
// @Summary Unfollow content
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubscriptionRequestDto true "Target to unfollow"
// @Success 200 {object} UnsubscribeResponseDto
// @Failure 400
// @Failure 401
// @Router /api/notifications/subscriptions [delete]
func Unsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dto, err := decodeDto[SubscriptionRequestDto](r)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*commands.UnsubscribeResponse](ctx, m, commands.Unsubscribe{
		FollowerId: currentProfileId(r),
		TargetType: notifications.TargetType(dto.TargetType),
		TargetId:   dto.TargetId,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, UnsubscribeResponseDto{
		Unsubscribed: response.Unsubscribed,
	})
}
