package events

import (
	"Keyo/internal/middlewares"
	"Keyo/utils"
	"context"
	"testing"

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
