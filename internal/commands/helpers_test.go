package commands

import (
	"Keyo/internal/clock"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"Keyo/utils"
	"context"
	"testing"
	"time"

	"github.com/The127/ioc"
)

type registration func(dc *ioc.DependencyCollection)

func provide[T any](value T) registration {
	return func(dc *ioc.DependencyCollection) {
		ioc.RegisterTransient(dc, func(_ *ioc.DependencyProvider) T {
			return value
		})
	}
}

func provideClock(now time.Time) registration {
	clockService, _ := clock.NewMockService(now)
	return provide(clockService)
}

func createContext(t *testing.T, registrations ...registration) context.Context {
	dc := ioc.NewDependencyCollection()
	for _, register := range registrations {
		register(dc)
	}

	scope := dc.BuildProvider()
	t.Cleanup(func() {
		utils.PanicOnError(scope.Close, "closing scope")
	})

	return middlewares.ContextWithScope(t.Context(), scope)
}

// sentNotifications captures the SendNotification requests a platform event
// command dispatches through the mediator.
type sentNotifications struct {
	requests []SendNotification
	skip     map[string]bool
}

func (s *sentNotifications) mediator() mediator.Mediator {
	m := mediator.NewMediator()
	mediator.RegisterHandler(m, func(_ context.Context, command SendNotification) (*SendNotificationResponse, error) {
		s.requests = append(s.requests, command)
		if s.skip[command.RecipientId.String()] {
			return &SendNotificationResponse{Skipped: true}, nil
		}
		return &SendNotificationResponse{Id: command.RecipientId}, nil
	})
	return m
}
