package handlers

import (
	"Keyo/internal/commands"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/queries"
	"Keyo/utils"
	"net/http"
	"time"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type NotificationDto struct {
	Id           uuid.UUID                 `json:"id"`
	Type         notifications.Type        `json:"notificationType"`
	Title        string                    `json:"title"`
	Message      string                    `json:"message"`
	Icon         string                    `json:"icon"`
	Label        string                    `json:"label"`
	CallToAction string                    `json:"callToAction"`
	ActorId      *uuid.UUID                `json:"actorId"`
	TargetType   *notifications.TargetType `json:"targetType"`
	TargetId     *string                   `json:"targetId"`
	ClickUrl     *string                   `json:"clickUrl"`
	DeepLink     map[string]any            `json:"deepLinkData"`
	ExtraData    map[string]any            `json:"extraData"`
	Priority     notifications.Priority    `json:"priority"`
	IsRead       bool                      `json:"isRead"`
	ReadAt       *time.Time                `json:"readAt"`
	IsClicked    bool                      `json:"isClicked"`
	CreatedAt    time.Time                 `json:"createdAt"`
	ExpiresAt    *time.Time                `json:"expiresAt"`
}

type ListNotificationsResponseDto struct {
	PagedResponseDto[NotificationDto]
	UnreadCount int `json:"unreadCount"`
}

// ListNotifications lists the caller's notifications
// @Summary List notifications
// @Description Paginated notifications of the authenticated profile, newest first
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (max 100)"
// @Param orderBy query string false "created_at, read_at or priority"
// @Param orderDir query string false "asc or desc"
// @Param search query string false "Search in title and message"
// @Param type query string false "Notification type"
// @Param priority query string false "Priority"
// @Param isRead query bool false "Read state"
// @Param unreadOnly query bool false "Only unread notifications"
// @Param recentOnly query bool false "Only the last 24 hours"
// @Param excludeExpired query bool false "Hide expired notifications (default true)"
// @Success 200 {object} ListNotificationsResponseDto
// @Failure 400
// @Failure 401
// @Router /api/notifications [get]
func ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	queryOps, err := ParseQueryOps(r)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	query := queries.ListNotifications{
		PagedQuery:     queryOps.ToPagedQuery(),
		OrderedQuery:   queryOps.ToOrderedQuery(),
		ProfileId:      currentProfileId(r),
		SearchText:     queryOps.Search,
		ExcludeExpired: true,
	}

	if value := r.Form.Get("type"); value != "" {
		query.Type = utils.Ptr(notifications.Type(value))
	}
	if value := r.Form.Get("priority"); value != "" {
		query.Priority = utils.Ptr(notifications.Priority(value))
	}

	query.IsRead, err = parseBoolParam(r, "isRead")
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	for name, target := range map[string]*bool{
		"unreadOnly":     &query.UnreadOnly,
		"recentOnly":     &query.RecentOnly,
		"excludeExpired": &query.ExcludeExpired,
	} {
		value, err := parseBoolParam(r, name)
		if err != nil {
			utils.HandleHttpError(w, err)
			return
		}
		if value != nil {
			*target = *value
		}
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*queries.ListNotificationsResponse](ctx, m, query)
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	items := utils.MapSlice(response.Items, func(x queries.ListNotificationsResponseItem) NotificationDto {
		return NotificationDto{
			Id:           x.Id,
			Type:         x.Type,
			Title:        x.Title,
			Message:      x.Message,
			Icon:         x.Icon,
			Label:        x.Label,
			CallToAction: x.CallToAction,
			ActorId:      x.ActorId,
			TargetType:   x.TargetType,
			TargetId:     x.TargetId,
			ClickUrl:     x.ClickUrl,
			DeepLink:     x.DeepLink,
			ExtraData:    x.ExtraData,
			Priority:     x.Priority,
			IsRead:       x.IsRead,
			ReadAt:       x.ReadAt,
			IsClicked:    x.IsClicked,
			CreatedAt:    x.CreatedAt,
			ExpiresAt:    x.ExpiresAt,
		}
	})

	writeJson(w, http.StatusOK, ListNotificationsResponseDto{
		PagedResponseDto: NewPagedResponseDto(utils.EmptyIfNil(items), response.Page, response.PageSize, response.TotalCount),
		UnreadCount:      response.UnreadCount,
	})
}

type NotificationSummaryDto struct {
	TotalCount       int                            `json:"totalCount"`
	UnreadCount      int                            `json:"unreadCount"`
	RecentCount      int                            `json:"recentCount"`
	RecentUnread     int                            `json:"recentUnreadCount"`
	UnreadByType     map[notifications.Type]int     `json:"unreadByType"`
	UnreadByPriority map[notifications.Priority]int `json:"unreadByPriority"`
	ReadPercentage   float64                        `json:"readPercentage"`
	TopTypes         []NotificationTypeCountDto     `json:"topTypes"`
	ActiveDevices    int                            `json:"activeDevices"`
	Preferences      PreferenceSummaryDto           `json:"preferences"`
}

type NotificationTypeCountDto struct {
	Type  notifications.Type `json:"type"`
	Count int                `json:"count"`
}

type PreferenceSummaryDto struct {
	PushEnabledTypes  int `json:"pushEnabledTypes"`
	EmailEnabledTypes int `json:"emailEnabledTypes"`
	InAppEnabledTypes int `json:"inAppEnabledTypes"`
	TotalTypes        int `json:"totalTypes"`
}

// GetNotificationSummary summarises the caller's notifications
// @Summary Notification summary
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} NotificationSummaryDto
// @Failure 401
// @Router /api/notifications/summary [get]
func GetNotificationSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*queries.GetNotificationSummaryResponse](ctx, m, queries.GetNotificationSummary{
		ProfileId: currentProfileId(r),
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, NotificationSummaryDto{
		TotalCount:       response.Total,
		UnreadCount:      response.Unread,
		RecentCount:      response.Recent,
		RecentUnread:     response.RecentUnread,
		UnreadByType:     response.UnreadByType,
		UnreadByPriority: response.UnreadByPriority,
		ReadPercentage:   response.ReadPercentage,
		TopTypes: utils.EmptyIfNil(utils.MapSlice(response.TopTypes, func(x queries.TypeCount) NotificationTypeCountDto {
			return NotificationTypeCountDto{Type: x.Type, Count: x.Count}
		})),
		ActiveDevices: response.ActiveDevices,
		Preferences: PreferenceSummaryDto{
			PushEnabledTypes:  response.Preferences.PushEnabled,
			EmailEnabledTypes: response.Preferences.EmailEnabled,
			InAppEnabledTypes: response.Preferences.InAppEnabled,
			TotalTypes:        response.Preferences.TotalTypes,
		},
	})
}

type UnreadCountDto struct {
	UnreadCount int `json:"unreadCount"`
}

// GetUnreadCount returns the number of unread notifications
// @Summary Unread notification count
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UnreadCountDto
// @Failure 401
// @Router /api/notifications/unread-count [get]
func GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*queries.GetUnreadCountResponse](ctx, m, queries.GetUnreadCount{
		ProfileId: currentProfileId(r),
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, UnreadCountDto{
		UnreadCount: response.UnreadCount,
	})
}

type MarkAllReadRequestDto struct {
	NotificationType *notifications.Type `json:"notificationType"`
}

type UpdatedCountDto struct {
	UpdatedCount int `json:"updatedCount"`
}

// MarkAllNotificationsRead marks every unread notification as read
// @Summary Mark all notifications read
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkAllReadRequestDto false "Limit to one notification type"
// @Success 200 {object} UpdatedCountDto
// @Failure 400
// @Failure 401
// @Router /api/notifications/read-all [patch]
func MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var dto MarkAllReadRequestDto
	if r.ContentLength != 0 {
		var err error
		dto, err = decodeDto[MarkAllReadRequestDto](r)
		if err != nil {
			utils.HandleHttpError(w, err)
			return
		}
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*commands.MarkAllNotificationsReadResponse](ctx, m, commands.MarkAllNotificationsRead{
		ProfileId: currentProfileId(r),
		Type:      dto.NotificationType,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, UpdatedCountDto{
		UpdatedCount: response.UpdatedCount,
	})
}

// MarkNotificationRead marks one notification as read
// @Summary Mark notification read
// @Tags Notifications
// @Security BearerAuth
// @Param id path string true "Notification ID (UUID)"
// @Success 204
// @Failure 401
// @Failure 404
// @Router /api/notifications/{id}/read [patch]
func MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notificationId, err := pathUuid(r, "id")
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	_, err = mediator.Send[*commands.MarkNotificationReadResponse](ctx, m, commands.MarkNotificationRead{
		ProfileId:      currentProfileId(r),
		NotificationId: notificationId,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type ClickNotificationResponseDto struct {
	ClickUrl *string        `json:"clickUrl"`
	DeepLink map[string]any `json:"deepLinkData"`
}

// ClickNotification records a click and returns where to navigate
// @Summary Click notification
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID (UUID)"
// @Success 200 {object} ClickNotificationResponseDto
// @Failure 401
// @Failure 404
// @Router /api/notifications/{id}/click [post]
func ClickNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notificationId, err := pathUuid(r, "id")
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*commands.ClickNotificationResponse](ctx, m, commands.ClickNotification{
		ProfileId:      currentProfileId(r),
		NotificationId: notificationId,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, ClickNotificationResponseDto{
		ClickUrl: response.ClickUrl,
		DeepLink: response.DeepLink,
	})
}

// DeleteNotification deletes one notification
// @Summary Delete notification
// @Tags Notifications
// @Security BearerAuth
// @Param id path string true "Notification ID (UUID)"
// @Success 204
// @Failure 401
// @Failure 404
// @Router /api/notifications/{id} [delete]
func DeleteNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notificationId, err := pathUuid(r, "id")
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	_, err = mediator.Send[*commands.DeleteNotificationResponse](ctx, m, commands.DeleteNotification{
		ProfileId:      currentProfileId(r),
		NotificationId: notificationId,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type EmailPreviewDto struct {
	Subject string `json:"subject"`
	Html    string `json:"html"`
	Text    string `json:"text"`
}

// GetEmailPreview renders the email a notification would send
// @Summary Preview notification email
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID (UUID)"
// @Success 200 {object} EmailPreviewDto
// @Failure 401
// @Failure 404
// @Router /api/notifications/{id}/email-preview [get]
func GetEmailPreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notificationId, err := pathUuid(r, "id")
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*queries.RenderNotificationEmailResponse](ctx, m, queries.RenderNotificationEmail{
		ProfileId:      currentProfileId(r),
		NotificationId: notificationId,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	writeJson(w, http.StatusOK, EmailPreviewDto{
		Subject: response.Subject,
		Html:    response.Html,
		Text:    response.Text,
	})
}
