package handlers

import (
	"Keyo/internal/authentication"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/queries"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/The127/ioc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type NotificationHandlerSuite struct {
	suite.Suite
}

func TestNotificationHandlerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(NotificationHandlerSuite))
}

func (s *NotificationHandlerSuite) get(m mediator.Mediator, profileId uuid.UUID, handler http.HandlerFunc) *httptest.ResponseRecorder {
	dc := ioc.NewDependencyCollection()
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) mediator.Mediator {
		return m
	})

	r := httptest.NewRequest(http.MethodGet, "/api/notifications/summary", nil)
	ctx := middlewares.ContextWithScope(r.Context(), dc.BuildProvider())
	ctx = authentication.ContextWithCurrentUser(ctx, authentication.NewCurrentUser(profileId))
	r = r.WithContext(ctx)
	w := httptest.NewRecorder()

	handler(w, r)
	return w
}

func (s *NotificationHandlerSuite) TestSummaryCarriesStats() {
	// arrange
	profileId := uuid.New()
	var received queries.GetNotificationSummary

	m := mediator.NewMediator()
	mediator.RegisterHandler(m, func(_ context.Context, query queries.GetNotificationSummary) (*queries.GetNotificationSummaryResponse, error) {
		received = query
		return &queries.GetNotificationSummaryResponse{
			Total:            3,
			Unread:           1,
			UnreadByType:     map[notifications.Type]int{notifications.TypeFollow: 1},
			UnreadByPriority: map[notifications.Priority]int{},
			ReadPercentage:   66.7,
			TopTypes:         []queries.TypeCount{{Type: notifications.TypeFollow, Count: 3}},
			ActiveDevices:    2,
			Preferences: queries.PreferenceSummary{
				PushEnabled:  4,
				EmailEnabled: 2,
				InAppEnabled: 5,
				TotalTypes:   21,
			},
		}, nil
	})

	// act
	w := s.get(m, profileId, GetNotificationSummary)

	// assert
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(profileId, received.ProfileId)
	s.JSONEq(`{
		"totalCount": 3,
		"unreadCount": 1,
		"recentCount": 0,
		"recentUnreadCount": 0,
		"unreadByType": {"follow": 1},
		"unreadByPriority": {},
		"readPercentage": 66.7,
		"topTypes": [{"type": "follow", "count": 3}],
		"activeDevices": 2,
		"preferences": {
			"pushEnabledTypes": 4,
			"emailEnabledTypes": 2,
			"inAppEnabledTypes": 5,
			"totalTypes": 21
		}
	}`, w.Body.String())
}

func (s *NotificationHandlerSuite) TestSummaryWithoutNotificationsListsNoTypes() {
	// arrange
	m := mediator.NewMediator()
	mediator.RegisterHandler(m, func(_ context.Context, _ queries.GetNotificationSummary) (*queries.GetNotificationSummaryResponse, error) {
		return &queries.GetNotificationSummaryResponse{}, nil
	})

	// act
	w := s.get(m, uuid.New(), GetNotificationSummary)

	// assert
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"topTypes":[]`)
}
