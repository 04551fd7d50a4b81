package jobs

import (
	"Keyo/internal/messages"
	"Keyo/internal/metrics"
	"Keyo/internal/repositories"
	repoMocks "Keyo/internal/repositories/mocks"
	"Keyo/internal/services/outbox"
	outboxMocks "Keyo/internal/services/outbox/mocks"
	"errors"
	"testing"
	"time"

	"github.com/The127/ioc"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OutboxJobSuite struct {
	suite.Suite
}

func TestOutboxJobSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OutboxJobSuite))
}

func (s *OutboxJobSuite) provider(
	outboxRepository repositories.OutboxMessageRepository,
	deliveryService outbox.DeliveryService,
) *ioc.DependencyProvider {
	dc := ioc.NewDependencyCollection()
	ioc.RegisterTransient(dc, func(_ *ioc.DependencyProvider) repositories.OutboxMessageRepository {
		return outboxRepository
	})
	ioc.RegisterTransient(dc, func(_ *ioc.DependencyProvider) outbox.DeliveryService {
		return deliveryService
	})
	return dc.BuildProvider()
}

func (s *OutboxJobSuite) message() *repositories.OutboxMessage {
	message, err := repositories.NewOutboxMessage(&messages.SendEmailMessage{
		NotificationId: uuid.New(),
		To:             "bob@keyo.test",
		Subject:        "New vote",
	})
	s.Require().NoError(err)
	message.Mock(time.Now())
	return message
}

func (s *OutboxJobSuite) TestDeliveredMessagesAreDeleted() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	message := s.message()

	outboxRepository := repoMocks.NewMockOutboxMessageRepository(ctrl)
	outboxRepository.EXPECT().List(gomock.Any(), gomock.Cond(func(x repositories.OutboxMessageFilter) bool {
		return x.GetAttemptsBelow() == 5 && x.GetLimit() == 50
	})).Return([]*repositories.OutboxMessage{message}, nil)
	outboxRepository.EXPECT().Delete(gomock.Any(), message.Id()).Return(nil)

	deliveryService := outboxMocks.NewMockDeliveryService(ctrl)
	deliveryService.EXPECT().Deliver(gomock.Any(), message).Return(nil)

	job := OutboxSendingJob(s.provider(outboxRepository, deliveryService), OutboxJobOptions{
		BatchSize:   50,
		MaxAttempts: 5,
	})

	// act
	err := job(s.T().Context())

	// assert
	s.Require().NoError(err)
}

func (s *OutboxJobSuite) TestFailedDeliveryIsRecorded() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	message := s.message()

	outboxRepository := repoMocks.NewMockOutboxMessageRepository(ctrl)
	outboxRepository.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*repositories.OutboxMessage{message}, nil)
	outboxRepository.EXPECT().Update(gomock.Any(), gomock.Cond(func(x *repositories.OutboxMessage) bool {
		return x.Attempts() == 1 && x.LastError() != nil && *x.LastError() == "smtp down"
	})).Return(nil)

	deliveryService := outboxMocks.NewMockDeliveryService(ctrl)
	deliveryService.EXPECT().Deliver(gomock.Any(), message).Return(errors.New("smtp down"))

	job := OutboxSendingJob(s.provider(outboxRepository, deliveryService), OutboxJobOptions{
		BatchSize:   50,
		MaxAttempts: 5,
	})

	// act
	err := job(s.T().Context())

	// assert
	s.Require().NoError(err)
}

func (s *OutboxJobSuite) TestLastAttemptDropsMessage() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	message := s.message()
	dropped := metrics.Deliveries.WithLabelValues(string(repositories.SendMailOutboxMessageType), metrics.ResultDropped)
	before := testutil.ToFloat64(dropped)

	outboxRepository := repoMocks.NewMockOutboxMessageRepository(ctrl)
	outboxRepository.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*repositories.OutboxMessage{message}, nil)
	outboxRepository.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	deliveryService := outboxMocks.NewMockDeliveryService(ctrl)
	deliveryService.EXPECT().Deliver(gomock.Any(), message).Return(errors.New("smtp down"))

	job := OutboxSendingJob(s.provider(outboxRepository, deliveryService), OutboxJobOptions{
		BatchSize:   50,
		MaxAttempts: 1,
	})

	// act
	err := job(s.T().Context())

	// assert
	s.Require().NoError(err)
	s.InDelta(before+1, testutil.ToFloat64(dropped), 0.001)
}

func (s *OutboxJobSuite) TestListFailureFailsTheRun() {
	// arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	outboxRepository := repoMocks.NewMockOutboxMessageRepository(ctrl)
	outboxRepository.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	deliveryService := outboxMocks.NewMockDeliveryService(ctrl)

	job := OutboxSendingJob(s.provider(outboxRepository, deliveryService), OutboxJobOptions{
		BatchSize:   50,
		MaxAttempts: 5,
	})

	// act
	err := job(s.T().Context())

	// assert
	s.Require().Error(err)
}
