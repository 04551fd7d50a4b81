package queries

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/clock"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type GetNotificationSummary struct {
	ProfileId uuid.UUID
}

func (a GetNotificationSummary) LogRequest() bool {
	return true
}

func (a GetNotificationSummary) LogResponse() bool {
	return false
}

func (a GetNotificationSummary) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a GetNotificationSummary) GetRequestName() string {
	return "GetNotificationSummary"
}

// TopTypeLimit caps how many notification types the summary ranks.
const TopTypeLimit = 5

type TypeCount struct {
	Type  notifications.Type
	Count int
}

// PreferenceSummary counts the notification types that reach the profile on
// each channel, out of TotalTypes.
type PreferenceSummary struct {
	PushEnabled  int
	EmailEnabled int
	InAppEnabled int
	TotalTypes   int
}

type GetNotificationSummaryResponse struct {
	Total            int
	Unread           int
	Recent           int
	RecentUnread     int
	UnreadByType     map[notifications.Type]int
	UnreadByPriority map[notifications.Priority]int
	ReadPercentage   float64
	TopTypes         []TypeCount
	ActiveDevices    int
	Preferences      PreferenceSummary
}

func HandleGetNotificationSummary(ctx context.Context, query GetNotificationSummary) (*GetNotificationSummaryResponse, error) {
	scope := middlewares.GetScope(ctx)
	clockService := ioc.GetDependency[clock.Service](scope)
	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)

	now := clockService.Now()
	counts, err := notificationRepository.Counts(ctx, query.ProfileId, now, now.Add(-RecentWindow))
	if err != nil {
		return nil, fmt.Errorf("counting notifications: %w", err)
	}

	unreadByType := counts.UnreadByType
	if unreadByType == nil {
		unreadByType = make(map[notifications.Type]int)
	}
	unreadByPriority := counts.UnreadByPriority
	if unreadByPriority == nil {
		unreadByPriority = make(map[notifications.Priority]int)
	}

	deviceRepository := ioc.GetDependency[repositories.DeviceRepository](scope)
	devices, err := deviceRepository.List(ctx, repositories.NewDeviceFilter().
		ProfileId(query.ProfileId).
		Active(true))
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	preferences, err := summarizePreferences(ctx, query.ProfileId)
	if err != nil {
		return nil, err
	}

	return &GetNotificationSummaryResponse{
		Total:            counts.Total,
		Unread:           counts.Unread,
		Recent:           counts.Recent,
		RecentUnread:     counts.RecentUnread,
		UnreadByType:     unreadByType,
		UnreadByPriority: unreadByPriority,
		ReadPercentage:   ReadPercentage(counts.Total, counts.Unread),
		TopTypes:         TopTypes(counts.ByType, TopTypeLimit),
		ActiveDevices:    len(devices),
		Preferences:      preferences,
	}, nil
}

func summarizePreferences(ctx context.Context, profileId uuid.UUID) (PreferenceSummary, error) {
	scope := middlewares.GetScope(ctx)
	preferenceRepository := ioc.GetDependency[repositories.NotificationPreferenceRepository](scope)

	stored, err := preferenceRepository.List(ctx, repositories.NewNotificationPreferenceFilter().ProfileId(profileId))
	if err != nil {
		return PreferenceSummary{}, fmt.Errorf("listing notification preferences: %w", err)
	}

	byType := make(map[notifications.Type]notifications.ChannelSettings, len(stored))
	for _, preference := range stored {
		byType[preference.Type()] = preference.Settings()
	}

	summary := PreferenceSummary{TotalTypes: len(notifications.AllTypes())}
	for _, notificationType := range notifications.AllTypes() {
		settings, ok := byType[notificationType]
		if !ok {
			settings = notifications.DefaultSettings(notificationType)
		}

		if settings.Allows(notifications.ChannelPush) {
			summary.PushEnabled++
		}
		if settings.Allows(notifications.ChannelEmail) {
			summary.EmailEnabled++
		}
		if settings.Allows(notifications.ChannelInApp) {
			summary.InAppEnabled++
		}
	}

	return summary, nil
}

// TopTypes ranks types by count, most frequent first. Ties are ordered by
// type name so the ranking is stable.
func TopTypes(byType map[notifications.Type]int, limit int) []TypeCount {
	ranked := make([]TypeCount, 0, len(byType))
	for notificationType, count := range byType {
		if count > 0 {
			ranked = append(ranked, TypeCount{Type: notificationType, Count: count})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Type < ranked[j].Type
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// ReadPercentage is rounded to one decimal. No notifications count as 0%.
func ReadPercentage(total int, unread int) float64 {
	if total <= 0 {
		return 0
	}
	read := float64(total-unread) / float64(total) * 100
	return math.Round(read*10) / 10
}
