package outbox

import (
	"Keyo/internal/middlewares"
	"Keyo/internal/repositories"
	"context"
	"fmt"

	"github.com/The127/ioc"
)

type inProcessDeliveryService struct{}

func NewInProcessDeliveryService() DeliveryService {
	return &inProcessDeliveryService{}
}

func (s *inProcessDeliveryService) Deliver(ctx context.Context, message *repositories.OutboxMessage) error {
	scope := middlewares.GetScope(ctx)
	messageBroker := ioc.GetDependency[MessageBroker](scope)
	err := messageBroker.Distribute(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to handle message: %w", err)
	}
	return nil
}
