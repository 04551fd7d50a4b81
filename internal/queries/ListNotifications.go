package queries

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/clock"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"Keyo/utils"
	"context"
	"fmt"
	"time"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

const (
	DefaultNotificationPageSize = 20
	MaxNotificationPageSize     = 100
	RecentWindow                = 24 * time.Hour
)

var notificationSortColumns = map[string]bool{
	"created_at": true,
	"read_at":    true,
	"priority":   true,
}

type ListNotifications struct {
	PagedQuery
	OrderedQuery
	ProfileId      uuid.UUID
	Type           *notifications.Type
	Priority       *notifications.Priority
	IsRead         *bool
	UnreadOnly     bool
	RecentOnly     bool
	ExcludeExpired bool
	SearchText     string
}

func (a ListNotifications) LogRequest() bool {
	return true
}

func (a ListNotifications) LogResponse() bool {
	return false
}

func (a ListNotifications) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a ListNotifications) GetRequestName() string {
	return "ListNotifications"
}

type ListNotificationsResponse struct {
	PagedResponse[ListNotificationsResponseItem]
	Page        int
	PageSize    int
	UnreadCount int
}

type ListNotificationsResponseItem struct {
	Id           uuid.UUID
	Type         notifications.Type
	Title        string
	Message      string
	Icon         string
	Label        string
	CallToAction string
	ActorId      *uuid.UUID
	TargetType   *notifications.TargetType
	TargetId     *string
	ClickUrl     *string
	DeepLink     map[string]any
	ExtraData    map[string]any
	Priority     notifications.Priority
	IsRead       bool
	ReadAt       *time.Time
	IsClicked    bool
	CreatedAt    time.Time
	ExpiresAt    *time.Time
}

func normalizePaging(page int, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultNotificationPageSize
	}
	if pageSize > MaxNotificationPageSize {
		pageSize = MaxNotificationPageSize
	}
	return page, pageSize
}

func HandleListNotifications(ctx context.Context, query ListNotifications) (*ListNotificationsResponse, error) {
	if query.Type != nil && !query.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidNotificationType, *query.Type)
	}
	if query.Priority != nil && !query.Priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidPriority, *query.Priority)
	}
	if query.OrderBy != "" && !notificationSortColumns[query.OrderBy] {
		return nil, fmt.Errorf("cannot sort by %q: %w", query.OrderBy, utils.ErrHttpBadRequest)
	}

	page, pageSize := normalizePaging(query.Page, query.PageSize)

	scope := middlewares.GetScope(ctx)
	clockService := ioc.GetDependency[clock.Service](scope)
	now := clockService.Now()

	filter := repositories.NewNotificationFilter().
		RecipientId(query.ProfileId).
		Pagination(page, pageSize)

	if query.OrderBy != "" {
		filter = filter.Order(query.OrderBy, query.OrderDir)
	}
	if query.Type != nil {
		filter = filter.Types(*query.Type)
	}
	if query.Priority != nil {
		filter = filter.Priority(*query.Priority)
	}
	if query.UnreadOnly {
		filter = filter.IsRead(false)
	} else if query.IsRead != nil {
		filter = filter.IsRead(*query.IsRead)
	}
	if query.RecentOnly {
		filter = filter.CreatedAfter(now.Add(-RecentWindow))
	}
	if query.ExcludeExpired {
		filter = filter.NotExpiredAt(now)
	}
	if search := repositories.NewContainsSearchFilter(query.SearchText); !search.IsEmpty() {
		filter = filter.Search(search)
	}

	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)
	result, total, err := notificationRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	unreadCount, err := notificationRepository.Count(ctx, repositories.NewNotificationFilter().
		RecipientId(query.ProfileId).
		IsRead(false))
	if err != nil {
		return nil, fmt.Errorf("counting unread notifications: %w", err)
	}

	items := utils.MapSlice(result, mapNotification)

	return &ListNotificationsResponse{
		PagedResponse: NewPagedResponse(utils.EmptyIfNil(items), total),
		Page:          page,
		PageSize:      pageSize,
		UnreadCount:   unreadCount,
	}, nil
}

func mapNotification(n *repositories.Notification) ListNotificationsResponseItem {
	presentation := notifications.PresentationFor(n.Type())
	return ListNotificationsResponseItem{
		Id:           n.Id(),
		Type:         n.Type(),
		Title:        n.Title(),
		Message:      n.Message(),
		Icon:         presentation.Icon,
		Label:        presentation.Label,
		CallToAction: presentation.CallToAction,
		ActorId:      n.ActorId(),
		TargetType:   n.TargetType(),
		TargetId:     n.TargetId(),
		ClickUrl:     n.ClickUrl(),
		DeepLink:     n.DeepLink(),
		ExtraData:    n.ExtraData(),
		Priority:     n.Priority(),
		IsRead:       n.IsRead(),
		ReadAt:       n.ReadAt(),
		IsClicked:    n.IsClicked(),
		CreatedAt:    n.AuditCreatedAt(),
		ExpiresAt:    n.ExpiresAt(),
	}
}
