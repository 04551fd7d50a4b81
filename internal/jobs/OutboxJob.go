package jobs

import (
	"Keyo/internal/authentication"
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"Keyo/internal/metrics"
	"Keyo/internal/middlewares"
	"Keyo/internal/repositories"
	"Keyo/internal/services/outbox"
	"Keyo/utils"
	"context"
	"fmt"

	"github.com/The127/ioc"
)

type OutboxJobOptions struct {
	BatchSize   int
	MaxAttempts int
}

func OutboxSendingJob(dp *ioc.DependencyProvider, options OutboxJobOptions) JobFn {
	return func(ctx context.Context) error {
		ctx = authentication.ContextWithCurrentUser(ctx, authentication.SystemUser())

		outboxMessages, err := pendingMessages(ctx, dp, options)
		if err != nil {
			return err
		}

		for _, message := range outboxMessages {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			err = handleMessage(ctx, dp, message, options.MaxAttempts)
			if err != nil {
				logging.Named(config.TasksLogger).Errorf("failed handling message %s: %v", message.Id(), err)
			}
		}

		return nil
	}
}

func pendingMessages(ctx context.Context, dp *ioc.DependencyProvider, options OutboxJobOptions) ([]*repositories.OutboxMessage, error) {
	scope := dp.NewScope()
	defer utils.PanicOnError(scope.Close, "failed to close scope")
	ctx = middlewares.ContextWithScope(ctx, scope)

	outboxMessageRepository := ioc.GetDependency[repositories.OutboxMessageRepository](scope)
	filter := repositories.NewOutboxMessageFilter().
		AttemptsBelow(options.MaxAttempts).
		Limit(options.BatchSize)

	outboxMessages, err := outboxMessageRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox messages: %w", err)
	}

	return outboxMessages, nil
}

// handleMessage delivers one message in its own scope, so the delivery flags
// and the outbox row commit together.
func handleMessage(ctx context.Context, dp *ioc.DependencyProvider, message *repositories.OutboxMessage, maxAttempts int) error {
	scope := dp.NewScope()
	defer utils.PanicOnError(scope.Close, "failed to close scope")
	ctx = middlewares.ContextWithScope(ctx, scope)

	outboxMessageRepository := ioc.GetDependency[repositories.OutboxMessageRepository](scope)
	deliveryService := ioc.GetDependency[outbox.DeliveryService](scope)

	deliveryErr := deliveryService.Deliver(ctx, message)
	if deliveryErr == nil {
		err := outboxMessageRepository.Delete(ctx, message.Id())
		if err != nil {
			return fmt.Errorf("failed to delete message in database: %w", err)
		}
		return nil
	}

	message.RecordFailure(deliveryErr)

	if message.Attempts() >= maxAttempts {
		logging.Named(config.TasksLogger).Errorw("dropping outbox message",
			"message_id", message.Id(),
			"message_type", message.Type(),
			"attempts", message.Attempts(),
			"error", deliveryErr)
		metrics.CountDelivery(string(message.Type()), metrics.ResultDropped)
	}

	err := outboxMessageRepository.Update(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to record delivery failure: %w", err)
	}

	return fmt.Errorf("delivering message: %w", deliveryErr)
}
