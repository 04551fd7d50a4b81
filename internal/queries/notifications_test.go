package queries

import (
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"Keyo/internal/repositories/mocks"
	"Keyo/internal/services/keyValue"
	kvMocks "Keyo/internal/services/keyValue/mocks"
	"Keyo/utils"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NotificationQuerySuite struct {
	suite.Suite
}

func TestNotificationQuerySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(NotificationQuerySuite))
}

func (s *NotificationQuerySuite) TestNormalizePaging() {
	testCases := []struct {
		page, pageSize         int
		wantPage, wantPageSize int
	}{
		{0, 0, 1, DefaultNotificationPageSize},
		{3, 10, 3, 10},
		{-2, 500, 1, MaxNotificationPageSize},
	}

	for _, tc := range testCases {
		page, pageSize := normalizePaging(tc.page, tc.pageSize)
		s.Equal(tc.wantPage, page)
		s.Equal(tc.wantPageSize, pageSize)
	}
}

func (s *NotificationQuerySuite) TestReadPercentage() {
	s.InDelta(0.0, ReadPercentage(0, 0), 0.001)
	s.InDelta(66.7, ReadPercentage(3, 1), 0.001)
	s.InDelta(100.0, ReadPercentage(5, 0), 0.001)
}

func (s *NotificationQuerySuite) TestListAppliesFilters() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	now := time.Now()
	profileId := uuid.New()

	notification := repositories.NewNotification(profileId, notifications.TypeFollow, "New Follower!", "alice started following you", notifications.PriorityNormal)
	notification.Mock(now)

	notificationRepository := mocks.NewMockNotificationRepository(ctrl)
	notificationRepository.EXPECT().List(gomock.Any(), gomock.Cond(func(x repositories.NotificationFilter) bool {
		return x.GetRecipientId() == profileId &&
			x.HasIsRead() && !x.GetIsRead() &&
			x.GetCreatedAfter().Equal(now.Add(-RecentWindow)) &&
			x.GetNotExpiredAt().Equal(now) &&
			x.GetPagingInfo().Size() == MaxNotificationPageSize
	})).Return([]*repositories.Notification{notification}, 1, nil)
	notificationRepository.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)

	ctx := createContext(s.T(),
		provide[repositories.NotificationRepository](notificationRepository),
		provideClock(now),
	)

	// act
	resp, err := HandleListNotifications(ctx, ListNotifications{
		PagedQuery:     PagedQuery{Page: 1, PageSize: 1000},
		ProfileId:      profileId,
		UnreadOnly:     true,
		RecentOnly:     true,
		ExcludeExpired: true,
	})

	// assert
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal(1, resp.TotalCount)
	s.Equal(1, resp.UnreadCount)
	s.Equal(MaxNotificationPageSize, resp.PageSize)
	s.Equal(notifications.PresentationFor(notifications.TypeFollow).Icon, resp.Items[0].Icon)
}

func (s *NotificationQuerySuite) TestListSearchesLiterally() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	profileId := uuid.New()

	notificationRepository := mocks.NewMockNotificationRepository(ctrl)
	notificationRepository.EXPECT().List(gomock.Any(), gomock.Cond(func(x repositories.NotificationFilter) bool {
		return x.HasSearch() && x.GetSearch().Pattern() == `%50\%%`
	})).Return(nil, 0, nil)
	notificationRepository.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)

	ctx := createContext(s.T(),
		provide[repositories.NotificationRepository](notificationRepository),
		provideClock(time.Now()),
	)

	// act
	_, err := HandleListNotifications(ctx, ListNotifications{
		ProfileId:  profileId,
		SearchText: " 50% ",
	})

	// assert
	s.Require().NoError(err)
}

func (s *NotificationQuerySuite) TestListIgnoresBlankSearch() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	notificationRepository := mocks.NewMockNotificationRepository(ctrl)
	notificationRepository.EXPECT().List(gomock.Any(), gomock.Cond(func(x repositories.NotificationFilter) bool {
		return !x.HasSearch()
	})).Return(nil, 0, nil)
	notificationRepository.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)

	ctx := createContext(s.T(),
		provide[repositories.NotificationRepository](notificationRepository),
		provideClock(time.Now()),
	)

	// act
	_, err := HandleListNotifications(ctx, ListNotifications{
		ProfileId:  uuid.New(),
		SearchText: "   ",
	})

	// assert
	s.Require().NoError(err)
}

func (s *NotificationQuerySuite) TestListRejectsUnknownSortColumn() {
	// arrange
	ctx := createContext(s.T())

	// act
	resp, err := HandleListNotifications(ctx, ListNotifications{
		ProfileId:    uuid.New(),
		OrderedQuery: OrderedQuery{OrderBy: "title"},
	})

	// assert
	s.Require().ErrorIs(err, utils.ErrHttpBadRequest)
	s.Nil(resp)
}

func (s *NotificationQuerySuite) TestUnreadCountIsCached() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	profileId := uuid.New()

	notificationRepository := mocks.NewMockNotificationRepository(ctrl)
	notificationRepository.EXPECT().Count(gomock.Any(), gomock.Cond(func(x repositories.NotificationFilter) bool {
		return x.GetRecipientId() == profileId && x.HasIsRead() && !x.GetIsRead()
	})).Return(5, nil).Times(1)

	ctx := createContext(s.T(),
		provide[repositories.NotificationRepository](notificationRepository),
		provide(keyValue.NewMemoryStore()),
		provideClock(time.Now()),
	)

	// act
	first, err := HandleGetUnreadCount(ctx, GetUnreadCount{ProfileId: profileId})
	s.Require().NoError(err)
	second, err := HandleGetUnreadCount(ctx, GetUnreadCount{ProfileId: profileId})

	// assert
	s.Require().NoError(err)
	s.Equal(5, first.UnreadCount)
	s.False(first.Cached)
	s.Equal(5, second.UnreadCount)
	s.True(second.Cached)
}

func (s *NotificationQuerySuite) TestUnreadCountFallsBackWhenCacheFails() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	notificationRepository := mocks.NewMockNotificationRepository(ctrl)
	notificationRepository.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)

	store := kvMocks.NewMockStore(ctrl)
	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("connection refused"))
	store.EXPECT().Set(gomock.Any(), gomock.Any(), "2", gomock.Any()).Return(nil)

	ctx := createContext(s.T(),
		provide[repositories.NotificationRepository](notificationRepository),
		provide[keyValue.Store](store),
	)

	// act
	resp, err := HandleGetUnreadCount(ctx, GetUnreadCount{ProfileId: uuid.New()})

	// assert
	s.Require().NoError(err)
	s.Equal(2, resp.UnreadCount)
	s.False(resp.Cached)
}

func (s *NotificationQuerySuite) TestSummary() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	now := time.Now()
	profileId := uuid.New()

	notificationRepository := mocks.NewMockNotificationRepository(ctrl)
	notificationRepository.EXPECT().Counts(gomock.Any(), profileId, now, now.Add(-RecentWindow)).Return(&repositories.NotificationCounts{
		Total:  4,
		Unread: 1,
		Recent: 2,
		ByType: map[notifications.Type]int{
			notifications.TypeFollow:   3,
			notifications.TypePollVote: 1,
		},
	}, nil)

	deviceRepository := mocks.NewMockDeviceRepository(ctrl)
	deviceRepository.EXPECT().List(gomock.Any(), gomock.Cond(func(x repositories.DeviceFilter) bool {
		return x.GetProfileId() == profileId && x.HasActive() && x.GetActive()
	})).Return([]*repositories.Device{
		repositories.NewDevice(profileId, "token-a", repositories.DeviceTypeAndroid),
		repositories.NewDevice(profileId, "token-b", repositories.DeviceTypeWeb),
	}, nil)

	muted := repositories.NewNotificationPreference(profileId, notifications.TypeFollow)
	muted.Mock(now)
	muted.SetIsEnabled(false)

	preferenceRepository := mocks.NewMockNotificationPreferenceRepository(ctrl)
	preferenceRepository.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*repositories.NotificationPreference{muted}, nil)

	ctx := createContext(s.T(),
		provide[repositories.NotificationRepository](notificationRepository),
		provide[repositories.DeviceRepository](deviceRepository),
		provide[repositories.NotificationPreferenceRepository](preferenceRepository),
		provideClock(now),
	)

	expected := PreferenceSummary{TotalTypes: len(notifications.AllTypes())}
	for _, notificationType := range notifications.AllTypes() {
		if notificationType == notifications.TypeFollow {
			continue
		}
		defaults := notifications.DefaultSettings(notificationType)
		if defaults.Push {
			expected.PushEnabled++
		}
		if defaults.Email {
			expected.EmailEnabled++
		}
		expected.InAppEnabled++
	}

	// act
	resp, err := HandleGetNotificationSummary(ctx, GetNotificationSummary{ProfileId: profileId})

	// assert
	s.Require().NoError(err)
	s.Equal(4, resp.Total)
	s.InDelta(75.0, resp.ReadPercentage, 0.001)
	s.NotNil(resp.UnreadByType)
	s.NotNil(resp.UnreadByPriority)
	s.Equal(2, resp.ActiveDevices)
	s.Equal([]TypeCount{
		{Type: notifications.TypeFollow, Count: 3},
		{Type: notifications.TypePollVote, Count: 1},
	}, resp.TopTypes)
	s.Equal(expected, resp.Preferences)
	s.Equal(len(notifications.AllTypes())-1, resp.Preferences.InAppEnabled)
}

func (s *NotificationQuerySuite) TestTopTypesKeepsTheFiveMostFrequent() {
	// arrange
	byType := map[notifications.Type]int{}
	for i, notificationType := range notifications.AllTypes() {
		byType[notificationType] = i + 1
	}

	// act
	top := TopTypes(byType, TopTypeLimit)

	// assert
	s.Require().Len(top, TopTypeLimit)
	for i := 1; i < len(top); i++ {
		s.GreaterOrEqual(top[i-1].Count, top[i].Count)
	}
	s.Equal(len(notifications.AllTypes()), top[0].Count)
}

func (s *NotificationQuerySuite) TestTopTypesBreaksTiesByName() {
	// act
	top := TopTypes(map[notifications.Type]int{
		notifications.TypePollVote: 2,
		notifications.TypeFollow:   2,
		notifications.TypeWelcome:  0,
	}, TopTypeLimit)

	// assert
	s.Equal([]TypeCount{
		{Type: notifications.TypeFollow, Count: 2},
		{Type: notifications.TypePollVote, Count: 2},
	}, top)
}

func (s *NotificationQuerySuite) TestPreferencesFillDefaults() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	profileId := uuid.New()
	stored := repositories.NewNotificationPreference(profileId, notifications.TypeVoteMilestone)
	stored.Mock(time.Now())
	stored.SetCustomThresholds([]int{3, 30})

	preferenceRepository := mocks.NewMockNotificationPreferenceRepository(ctrl)
	preferenceRepository.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*repositories.NotificationPreference{stored}, nil)

	ctx := createContext(s.T(), provide[repositories.NotificationPreferenceRepository](preferenceRepository))

	// act
	resp, err := HandleListNotificationPreferences(ctx, ListNotificationPreferences{ProfileId: profileId})

	// assert
	s.Require().NoError(err)
	s.Require().Len(resp.Items, len(notifications.AllTypes()))
	for _, item := range resp.Items {
		if item.Type == notifications.TypeVoteMilestone {
			s.False(item.IsDefault)
			s.Equal([]int{3, 30}, item.CustomThresholds)
		} else {
			s.True(item.IsDefault)
			s.Equal(notifications.DefaultSettings(item.Type), item.Settings)
		}
	}
}
