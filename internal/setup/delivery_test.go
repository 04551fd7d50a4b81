package setup

import (
	"Keyo/internal/config"
	"Keyo/internal/services"
	"Keyo/internal/services/outbox"
	"Keyo/internal/services/push"
	"testing"

	"github.com/The127/ioc"
	"github.com/stretchr/testify/suite"
)

type DeliverySetupSuite struct {
	suite.Suite
}

func TestDeliverySetupSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(DeliverySetupSuite))
}

func (s *DeliverySetupSuite) config(queueMode config.QueueMode) config.Config {
	c := config.Config{}
	c.Mail.Mode = config.MailModeNoop
	c.Push.Mode = config.PushModeNoop
	c.Queue.Mode = queueMode
	return c
}

func (s *DeliverySetupSuite) TestInProcessRegistersTransportsAndBroker() {
	// arrange
	dc := ioc.NewDependencyCollection()

	// act
	err := Delivery(s.T().Context(), dc, s.config(config.QueueModeInProcess))

	// assert
	s.Require().NoError(err)
	provider := dc.BuildProvider()
	s.NotNil(ioc.GetDependency[services.MailService](provider))
	s.NotNil(ioc.GetDependency[push.Service](provider))
	s.NotNil(ioc.GetDependency[outbox.DeliveryService](provider))
	s.NotNil(ioc.GetDependency[outbox.MessageBroker](provider))
}

func (s *DeliverySetupSuite) TestNoopQueueDiscards() {
	// arrange
	dc := ioc.NewDependencyCollection()

	// act
	err := Delivery(s.T().Context(), dc, s.config(config.QueueModeNoop))

	// assert
	s.Require().NoError(err)
	deliveryService := ioc.GetDependency[outbox.DeliveryService](dc.BuildProvider())
	s.IsType(outbox.NewDiscardingDeliveryService(), deliveryService)
}

func (s *DeliverySetupSuite) TestUnknownModesAreErrors() {
	// arrange
	unknownQueue := s.config("kafka")
	unknownMail := s.config(config.QueueModeInProcess)
	unknownMail.Mail.Mode = "pigeon"

	// act
	queueErr := Delivery(s.T().Context(), ioc.NewDependencyCollection(), unknownQueue)
	mailErr := Delivery(s.T().Context(), ioc.NewDependencyCollection(), unknownMail)

	// assert
	s.ErrorContains(queueErr, "kafka")
	s.ErrorContains(mailErr, "pigeon")
}
