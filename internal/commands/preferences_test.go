package commands

import (
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"Keyo/internal/repositories/mocks"
	"Keyo/utils"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PreferenceCommandSuite struct {
	suite.Suite
}

func TestPreferenceCommandSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(PreferenceCommandSuite))
}

func (s *PreferenceCommandSuite) TestUpdateInsertsDefaultsWithChanges() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	profileId := uuid.New()

	preferenceRepository := mocks.NewMockNotificationPreferenceRepository(ctrl)
	preferenceRepository.EXPECT().First(gomock.Any(), gomock.Any()).Return(nil, nil)
	preferenceRepository.EXPECT().Insert(gomock.Any(), gomock.Cond(func(x *repositories.NotificationPreference) bool {
		return x.ProfileId() == profileId &&
			x.Type() == notifications.TypeVoteMilestone &&
			!x.PushEnabled() &&
			x.InAppEnabled()
	})).Return(nil)

	ctx := createContext(s.T(), provide[repositories.NotificationPreferenceRepository](preferenceRepository))

	// act
	resp, err := HandleUpdateNotificationPreference(ctx, UpdateNotificationPreference{
		ProfileId:        profileId,
		Type:             notifications.TypeVoteMilestone,
		Push:             utils.Ptr(false),
		CustomThresholds: utils.Ptr([]int{50, 10, 50}),
	})

	// assert
	s.Require().NoError(err)
	s.Equal([]int{10, 50}, resp.CustomThresholds)
	s.False(resp.Settings.Push)
}

func (s *PreferenceCommandSuite) TestUpdateStoredPreference() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	profileId := uuid.New()
	stored := repositories.NewNotificationPreference(profileId, notifications.TypeFollow)
	stored.Mock(time.Now())
	stored.ClearChanges()

	preferenceRepository := mocks.NewMockNotificationPreferenceRepository(ctrl)
	preferenceRepository.EXPECT().First(gomock.Any(), gomock.Any()).Return(stored, nil)
	preferenceRepository.EXPECT().Update(gomock.Any(), gomock.Cond(func(x *repositories.NotificationPreference) bool {
		return x.Id() == stored.Id() && !x.IsEnabled()
	})).Return(nil)

	ctx := createContext(s.T(), provide[repositories.NotificationPreferenceRepository](preferenceRepository))

	// act
	resp, err := HandleUpdateNotificationPreference(ctx, UpdateNotificationPreference{
		ProfileId: profileId,
		Type:      notifications.TypeFollow,
		Enabled:   utils.Ptr(false),
	})

	// assert
	s.Require().NoError(err)
	s.False(resp.Settings.Enabled)
}

func (s *PreferenceCommandSuite) TestThresholdsOnlyForMilestones() {
	// arrange
	ctx := createContext(s.T())

	// act
	resp, err := HandleUpdateNotificationPreference(ctx, UpdateNotificationPreference{
		ProfileId:        uuid.New(),
		Type:             notifications.TypeFollow,
		CustomThresholds: utils.Ptr([]int{5}),
	})

	// assert
	s.Require().ErrorIs(err, utils.ErrHttpBadRequest)
	s.Nil(resp)
}

func (s *PreferenceCommandSuite) TestThresholdsMustBePositive() {
	// arrange
	ctx := createContext(s.T())

	// act
	resp, err := HandleUpdateNotificationPreference(ctx, UpdateNotificationPreference{
		ProfileId:        uuid.New(),
		Type:             notifications.TypeVoteMilestone,
		CustomThresholds: utils.Ptr([]int{10, 0}),
	})

	// assert
	s.Require().ErrorIs(err, utils.ErrHttpBadRequest)
	s.Nil(resp)
}

func (s *PreferenceCommandSuite) TestUpdateUnknownType() {
	// arrange
	ctx := createContext(s.T())

	// act
	resp, err := HandleUpdateNotificationPreference(ctx, UpdateNotificationPreference{
		ProfileId: uuid.New(),
		Type:      notifications.Type("carrier_pigeon"),
	})

	// assert
	s.Require().ErrorIs(err, utils.ErrInvalidNotificationType)
	s.Nil(resp)
}

func (s *PreferenceCommandSuite) TestToggleChannelMaterializesEveryType() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	profileId := uuid.New()
	stored := repositories.NewNotificationPreference(profileId, notifications.TypeFollow)
	stored.Mock(time.Now())
	stored.ClearChanges()

	preferenceRepository := mocks.NewMockNotificationPreferenceRepository(ctrl)
	preferenceRepository.EXPECT().List(gomock.Any(), gomock.Cond(func(x repositories.NotificationPreferenceFilter) bool {
		return x.GetProfileId() == profileId
	})).Return([]*repositories.NotificationPreference{stored}, nil)
	preferenceRepository.EXPECT().Update(gomock.Any(), stored).Return(nil)
	preferenceRepository.EXPECT().Insert(gomock.Any(), gomock.Cond(func(x *repositories.NotificationPreference) bool {
		return !x.PushEnabled()
	})).Return(nil).Times(len(notifications.AllTypes()) - 1)

	ctx := createContext(s.T(), provide[repositories.NotificationPreferenceRepository](preferenceRepository))

	// act
	resp, err := HandleToggleChannel(ctx, ToggleChannel{
		ProfileId: profileId,
		Channel:   notifications.ChannelPush,
		Enable:    false,
	})

	// assert
	s.Require().NoError(err)
	s.Equal(len(notifications.AllTypes()), resp.UpdatedCount)
	s.False(stored.PushEnabled())
}

func (s *PreferenceCommandSuite) TestToggleUnknownChannel() {
	// arrange
	ctx := createContext(s.T())

	// act
	resp, err := HandleToggleChannel(ctx, ToggleChannel{
		ProfileId: uuid.New(),
		Channel:   notifications.Channel("pager"),
		Enable:    true,
	})

	// assert
	s.Require().ErrorIs(err, utils.ErrHttpBadRequest)
	s.Nil(resp)
}

func (s *PreferenceCommandSuite) TestBulkUpdateRecomputesMasterSwitch() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	profileId := uuid.New()

	preferenceRepository := mocks.NewMockNotificationPreferenceRepository(ctrl)
	preferenceRepository.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	preferenceRepository.EXPECT().Insert(gomock.Any(), gomock.Cond(func(x *repositories.NotificationPreference) bool {
		return !x.IsEnabled()
	})).Return(nil).Times(len(notifications.AllTypes()))

	ctx := createContext(s.T(), provide[repositories.NotificationPreferenceRepository](preferenceRepository))

	// act
	resp, err := HandleBulkUpdateNotificationPreferences(ctx, BulkUpdateNotificationPreferences{
		ProfileId: profileId,
		InApp:     utils.Ptr(false),
		Push:      utils.Ptr(false),
		Email:     utils.Ptr(false),
	})

	// assert
	s.Require().NoError(err)
	s.Equal(len(notifications.AllTypes()), resp.UpdatedCount)
}
