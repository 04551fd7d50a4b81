package jobs

import (
	"Keyo/internal/authentication"
	"Keyo/internal/commands"
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"Keyo/utils"
	"context"
	"fmt"
	"time"

	"github.com/The127/ioc"
)

func NotificationCleanupJob(dp *ioc.DependencyProvider, retention time.Duration) JobFn {
	return func(ctx context.Context) error {
		scope := dp.NewScope()
		defer utils.PanicOnError(scope.Close, "failed to close scope")

		ctx = middlewares.ContextWithScope(ctx, scope)
		ctx = authentication.ContextWithCurrentUser(ctx, authentication.SystemUser())

		m := ioc.GetDependency[mediator.Mediator](scope)
		response, err := mediator.Send[*commands.CleanupNotificationsResponse](ctx, m, commands.CleanupNotifications{
			Retention: retention,
		})
		if err != nil {
			return fmt.Errorf("cleaning up notifications: %w", err)
		}

		logging.Named(config.TasksLogger).Infow("cleaned up notifications",
			"expired", response.ExpiredCount,
			"old", response.OldCount)

		return nil
	}
}
