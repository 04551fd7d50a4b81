package outbox

import (
	"Keyo/internal/clock"
	"Keyo/internal/messages"
	"Keyo/internal/middlewares"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	repoMocks "Keyo/internal/repositories/mocks"
	"Keyo/internal/services"
	serviceMocks "Keyo/internal/services/mocks"
	"Keyo/internal/services/outbox/mocks"
	"Keyo/internal/services/push"
	pushMocks "Keyo/internal/services/push/mocks"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/The127/ioc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	gomail "gopkg.in/mail.v2"
)

type MessageBrokerSuite struct {
	suite.Suite
}

func TestMessageBrokerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(MessageBrokerSuite))
}

func (s *MessageBrokerSuite) createContext(
	notificationRepository repositories.NotificationRepository,
	deviceRepository repositories.DeviceRepository,
	mailService services.MailService,
	pushService push.Service,
	messageBroker MessageBroker,
) context.Context {
	dc := ioc.NewDependencyCollection()
	clockService, _ := clock.NewMockServiceNow()
	ioc.RegisterTransient(dc, func(_ *ioc.DependencyProvider) clock.Service {
		return clockService
	})
	if notificationRepository != nil {
		ioc.RegisterTransient(dc, func(_ *ioc.DependencyProvider) repositories.NotificationRepository {
			return notificationRepository
		})
	}
	if deviceRepository != nil {
		ioc.RegisterTransient(dc, func(_ *ioc.DependencyProvider) repositories.DeviceRepository {
			return deviceRepository
		})
	}
	if mailService != nil {
		ioc.RegisterTransient(dc, func(_ *ioc.DependencyProvider) services.MailService {
			return mailService
		})
	}
	if pushService != nil {
		ioc.RegisterTransient(dc, func(_ *ioc.DependencyProvider) push.Service {
			return pushService
		})
	}
	if messageBroker != nil {
		ioc.RegisterTransient(dc, func(_ *ioc.DependencyProvider) MessageBroker {
			return messageBroker
		})
	}
	return middlewares.ContextWithScope(s.T().Context(), dc.BuildProvider())
}

func (s *MessageBrokerSuite) outboxMessage(details repositories.OutboxMessageDetails) *repositories.OutboxMessage {
	message, err := repositories.NewOutboxMessage(details)
	s.Require().NoError(err)
	message.Mock(time.Now())
	return message
}

func (s *MessageBrokerSuite) notification(recipientId uuid.UUID) *repositories.Notification {
	notification := repositories.NewNotification(recipientId, notifications.TypeFollow, "New Follower!", "Ada started following you", notifications.PriorityNormal)
	notification.Mock(time.Now())
	return notification
}

func (s *MessageBrokerSuite) TestMailMarksNotificationEmailSent() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	notification := s.notification(uuid.New())

	notificationRepository := repoMocks.NewMockNotificationRepository(ctrl)
	notificationRepository.EXPECT().First(gomock.Any(), gomock.Cond(func(x repositories.NotificationFilter) bool {
		return x.GetId() == notification.Id()
	})).Return(notification, nil)
	notificationRepository.EXPECT().Update(gomock.Any(), gomock.Cond(func(x *repositories.Notification) bool {
		return x.EmailSent()
	})).Return(nil)

	mailService := serviceMocks.NewMockMailService(ctrl)
	mailService.EXPECT().Send(gomock.Cond(func(x *gomail.Message) bool {
		return x.GetHeader("Subject")[0] == "New follower"
	})).Return(nil)

	ctx := s.createContext(notificationRepository, nil, mailService, nil, nil)
	message := s.outboxMessage(&messages.SendEmailMessage{
		NotificationId: notification.Id(),
		To:             "grace@keyo.test",
		DisplayName:    "Grace",
		Subject:        "New follower",
		HtmlBody:       "<p>Ada started following you</p>",
		TextBody:       "Ada started following you",
	})

	// act
	err := NewMessageBroker().Distribute(ctx, message)

	// assert
	s.Require().NoError(err)
}

func (s *MessageBrokerSuite) TestMailFailureIsReturned() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	mailService := serviceMocks.NewMockMailService(ctrl)
	mailService.EXPECT().Send(gomock.Any()).Return(errors.New("smtp down"))

	ctx := s.createContext(nil, nil, mailService, nil, nil)
	message := s.outboxMessage(&messages.SendEmailMessage{
		NotificationId: uuid.New(),
		To:             "grace@keyo.test",
		Subject:        "New follower",
	})

	// act
	err := NewMessageBroker().Distribute(ctx, message)

	// assert
	s.Require().ErrorContains(err, "smtp down")
}

func (s *MessageBrokerSuite) TestPushWithoutDevicesIsSkipped() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	recipientId := uuid.New()

	deviceRepository := repoMocks.NewMockDeviceRepository(ctrl)
	deviceRepository.EXPECT().List(gomock.Any(), gomock.Cond(func(x repositories.DeviceFilter) bool {
		return x.GetProfileId() == recipientId && x.GetActive()
	})).Return(nil, nil)

	pushService := pushMocks.NewMockService(ctrl)

	ctx := s.createContext(nil, deviceRepository, nil, pushService, nil)
	message := s.outboxMessage(&messages.SendPushMessage{
		NotificationId: uuid.New(),
		RecipientId:    recipientId,
		Title:          "New Follower!",
	})

	// act
	err := NewMessageBroker().Distribute(ctx, message)

	// assert
	s.Require().NoError(err)
}

func (s *MessageBrokerSuite) TestPushDeactivatesUnregisteredDevices() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	recipientId := uuid.New()
	notification := s.notification(recipientId)
	stale := repositories.NewDevice(recipientId, "stale-token", repositories.DeviceTypeAndroid)
	current := repositories.NewDevice(recipientId, "current-token", repositories.DeviceTypeIos)

	deviceRepository := repoMocks.NewMockDeviceRepository(ctrl)
	deviceRepository.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*repositories.Device{stale, current}, nil)
	deviceRepository.EXPECT().Update(gomock.Any(), stale).Return(nil)
	deviceRepository.EXPECT().Update(gomock.Any(), current).Return(nil)

	pushService := pushMocks.NewMockService(ctrl)
	pushService.EXPECT().Send(gomock.Any(), gomock.Cond(func(x push.Message) bool {
		return x.Token == "stale-token"
	})).Return(push.ErrUnregisteredToken)
	pushService.EXPECT().Send(gomock.Any(), gomock.Cond(func(x push.Message) bool {
		return x.Token == "current-token" && x.Title == "New Follower!"
	})).Return(nil)

	notificationRepository := repoMocks.NewMockNotificationRepository(ctrl)
	notificationRepository.EXPECT().First(gomock.Any(), gomock.Any()).Return(notification, nil)
	notificationRepository.EXPECT().Update(gomock.Any(), gomock.Cond(func(x *repositories.Notification) bool {
		return x.PushSent()
	})).Return(nil)

	ctx := s.createContext(notificationRepository, deviceRepository, nil, pushService, nil)
	message := s.outboxMessage(&messages.SendPushMessage{
		NotificationId: notification.Id(),
		RecipientId:    recipientId,
		Title:          "New Follower!",
		Body:           "Ada started following you",
	})

	// act
	err := NewMessageBroker().Distribute(ctx, message)

	// assert
	s.Require().NoError(err)
	s.False(stale.Active())
	s.True(current.Active())
	s.NotNil(current.LastUsedAt())
}

func (s *MessageBrokerSuite) TestPushFailsWhenNoDeviceAccepts() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	recipientId := uuid.New()
	device := repositories.NewDevice(recipientId, "token", repositories.DeviceTypeWeb)

	deviceRepository := repoMocks.NewMockDeviceRepository(ctrl)
	deviceRepository.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*repositories.Device{device}, nil)

	pushService := pushMocks.NewMockService(ctrl)
	pushService.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("fcm unavailable"))

	ctx := s.createContext(nil, deviceRepository, nil, pushService, nil)
	message := s.outboxMessage(&messages.SendPushMessage{
		NotificationId: uuid.New(),
		RecipientId:    recipientId,
	})

	// act
	err := NewMessageBroker().Distribute(ctx, message)

	// assert
	s.Require().ErrorContains(err, "fcm unavailable")
}

func (s *MessageBrokerSuite) TestInProcessDeliveryUsesBroker() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	message := s.outboxMessage(&messages.SendEmailMessage{NotificationId: uuid.New()})

	messageBroker := mocks.NewMockMessageBroker(ctrl)
	messageBroker.EXPECT().Distribute(gomock.Any(), message).Return(errors.New("boom"))

	ctx := s.createContext(nil, nil, nil, nil, messageBroker)

	// act
	err := NewInProcessDeliveryService().Deliver(ctx, message)

	// assert
	s.Require().ErrorContains(err, "boom")
}

func (s *MessageBrokerSuite) TestDiscardingDeliveryDropsMessages() {
	// arrange
	message := s.outboxMessage(&messages.SendPushMessage{NotificationId: uuid.New()})

	// act
	err := NewDiscardingDeliveryService().Deliver(s.T().Context(), message)

	// assert
	s.Require().NoError(err)
}

func (s *MessageBrokerSuite) TestChannelOfMessageTypes() {
	testCases := []struct {
		messageType repositories.OutboxMessageType
		channel     notifications.Channel
		ok          bool
	}{
		{repositories.SendMailOutboxMessageType, notifications.ChannelEmail, true},
		{repositories.SendPushOutboxMessageType, notifications.ChannelPush, true},
		{"unknown", "", false},
	}

	for _, tc := range testCases {
		channel, ok := channelOf(tc.messageType)
		s.Equal(tc.ok, ok, string(tc.messageType))
		s.Equal(tc.channel, channel, string(tc.messageType))
	}
}
