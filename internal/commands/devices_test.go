package commands

import (
	"Keyo/internal/repositories"
	"Keyo/internal/repositories/mocks"
	"Keyo/utils"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DeviceCommandSuite struct {
	suite.Suite
}

func TestDeviceCommandSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(DeviceCommandSuite))
}

func (s *DeviceCommandSuite) TestRegisterNewToken() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	now := time.Now()
	profileId := uuid.New()

	deviceRepository := mocks.NewMockDeviceRepository(ctrl)
	deviceRepository.EXPECT().First(gomock.Any(), gomock.Cond(func(x repositories.DeviceFilter) bool {
		return x.GetToken() == "fcm-token" && !x.HasProfileId()
	})).Return(nil, nil)
	deviceRepository.EXPECT().Insert(gomock.Any(), gomock.Cond(func(x *repositories.Device) bool {
		return x.ProfileId() == profileId &&
			x.Active() &&
			x.LastUsedAt().Equal(now) &&
			*x.DeviceName() == "Pixel"
	})).DoAndReturn(func(_ context.Context, d *repositories.Device) error {
		d.Mock(now)
		return nil
	})

	ctx := createContext(s.T(),
		provide[repositories.DeviceRepository](deviceRepository),
		provideClock(now),
	)

	// act
	resp, err := HandleRegisterDevice(ctx, RegisterDevice{
		ProfileId:  profileId,
		Token:      "fcm-token",
		DeviceType: repositories.DeviceTypeAndroid,
		DeviceName: utils.Ptr("Pixel"),
	})

	// assert
	s.Require().NoError(err)
	s.True(resp.Created)
	s.NotEqual(uuid.Nil, resp.Id)
}

func (s *DeviceCommandSuite) TestRegisterKnownTokenMovesToCaller() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	now := time.Now()
	profileId := uuid.New()

	existing := repositories.NewDevice(uuid.New(), "fcm-token", repositories.DeviceTypeIos)
	existing.Mock(now.Add(-24 * time.Hour))
	existing.SetActive(false)
	existing.ClearChanges()

	deviceRepository := mocks.NewMockDeviceRepository(ctrl)
	deviceRepository.EXPECT().First(gomock.Any(), gomock.Any()).Return(existing, nil)
	deviceRepository.EXPECT().Update(gomock.Any(), gomock.Cond(func(x *repositories.Device) bool {
		return x.ProfileId() == profileId &&
			x.Active() &&
			x.DeviceType() == repositories.DeviceTypeAndroid
	})).Return(nil)

	ctx := createContext(s.T(),
		provide[repositories.DeviceRepository](deviceRepository),
		provideClock(now),
	)

	// act
	resp, err := HandleRegisterDevice(ctx, RegisterDevice{
		ProfileId:  profileId,
		Token:      "fcm-token",
		DeviceType: repositories.DeviceTypeAndroid,
	})

	// assert
	s.Require().NoError(err)
	s.False(resp.Created)
	s.Equal(existing.Id(), resp.Id)
}

func (s *DeviceCommandSuite) TestRegisterRejectsUnknownDeviceType() {
	// arrange
	ctx := createContext(s.T())

	// act
	resp, err := HandleRegisterDevice(ctx, RegisterDevice{
		ProfileId:  uuid.New(),
		Token:      "fcm-token",
		DeviceType: repositories.DeviceType("toaster"),
	})

	// assert
	s.Require().ErrorIs(err, utils.ErrHttpBadRequest)
	s.Nil(resp)
}

func (s *DeviceCommandSuite) TestRegisterRejectsEmptyToken() {
	// arrange
	ctx := createContext(s.T())

	// act
	resp, err := HandleRegisterDevice(ctx, RegisterDevice{
		ProfileId:  uuid.New(),
		DeviceType: repositories.DeviceTypeWeb,
	})

	// assert
	s.Require().ErrorIs(err, utils.ErrHttpBadRequest)
	s.Nil(resp)
}

func (s *DeviceCommandSuite) TestUnregisterDeactivates() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	profileId := uuid.New()
	device := repositories.NewDevice(profileId, "fcm-token", repositories.DeviceTypeWeb)
	device.Mock(time.Now())

	deviceRepository := mocks.NewMockDeviceRepository(ctrl)
	deviceRepository.EXPECT().Single(gomock.Any(), gomock.Cond(func(x repositories.DeviceFilter) bool {
		return x.GetToken() == "fcm-token" && x.GetProfileId() == profileId
	})).Return(device, nil)
	deviceRepository.EXPECT().Update(gomock.Any(), gomock.Cond(func(x *repositories.Device) bool {
		return !x.Active()
	})).Return(nil)

	ctx := createContext(s.T(), provide[repositories.DeviceRepository](deviceRepository))

	// act
	_, err := HandleUnregisterDevice(ctx, UnregisterDevice{
		ProfileId: profileId,
		Token:     "fcm-token",
	})

	// assert
	s.Require().NoError(err)
}

func (s *DeviceCommandSuite) TestUnregisterUnknownToken() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	deviceRepository := mocks.NewMockDeviceRepository(ctrl)
	deviceRepository.EXPECT().Single(gomock.Any(), gomock.Any()).Return(nil, utils.ErrDeviceNotFound)

	ctx := createContext(s.T(), provide[repositories.DeviceRepository](deviceRepository))

	// act
	resp, err := HandleUnregisterDevice(ctx, UnregisterDevice{
		ProfileId: uuid.New(),
		Token:     "gone",
	})

	// assert
	s.Require().ErrorIs(err, utils.ErrResourceNotFound)
	s.Nil(resp)
}
