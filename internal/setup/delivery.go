package setup

import (
	"Keyo/internal/config"
	"Keyo/internal/services"
	"Keyo/internal/services/outbox"
	"Keyo/internal/services/push"
	"context"
	"fmt"

	"github.com/The127/ioc"
)

// Delivery registers the email and push transports and the service that
// drains outbox messages into them.
func Delivery(ctx context.Context, dc *ioc.DependencyCollection, c config.Config) error {
	mailService, err := newMailService(c.Mail)
	if err != nil {
		return err
	}
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) services.MailService {
		return mailService
	})

	pushService, err := newPushService(ctx, c.Push)
	if err != nil {
		return err
	}
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) push.Service {
		return pushService
	})

	switch c.Queue.Mode {
	case config.QueueModeNoop:
		ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) outbox.DeliveryService {
			return outbox.NewDiscardingDeliveryService()
		})

	case config.QueueModeInProcess:
		ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) outbox.DeliveryService {
			return outbox.NewInProcessDeliveryService()
		})
		ioc.RegisterTransient(dc, func(_ *ioc.DependencyProvider) outbox.MessageBroker {
			return outbox.NewMessageBroker()
		})

	default:
		return fmt.Errorf("queue mode %q is not supported", c.Queue.Mode)
	}

	return nil
}

func newMailService(mc config.MailConfig) (services.MailService, error) {
	switch mc.Mode {
	case config.MailModeSmtp:
		return services.NewMailService(mc), nil
	case config.MailModeNoop:
		return services.NewNoopMailService(), nil
	default:
		return nil, fmt.Errorf("mail mode %q is not supported", mc.Mode)
	}
}

func newPushService(ctx context.Context, pc config.PushConfig) (push.Service, error) {
	switch pc.Mode {
	case config.PushModeFcm:
		pushService, err := push.NewFcmService(ctx, pc)
		if err != nil {
			return nil, fmt.Errorf("setting up fcm: %w", err)
		}
		return pushService, nil
	case config.PushModeNoop:
		return push.NewNoopService(), nil
	default:
		return nil, fmt.Errorf("push mode %q is not supported", pc.Mode)
	}
}
