package behaviours

import (
	"Keyo/internal/logging"
	"Keyo/internal/mediator"
	"context"
	"time"
)

type Loggable interface {
	LogRequest() bool
	GetRequestName() string
}

// LoggingBehaviour records each request with its duration. Requests opt into
// having their payload logged.
func LoggingBehaviour(ctx context.Context, request Loggable, next mediator.Next) error {
	start := time.Now()
	err := next()

	fields := []any{
		"request", request.GetRequestName(),
		"duration", time.Since(start),
	}
	if request.LogRequest() {
		fields = append(fields, "payload", request)
	}

	if err != nil {
		logging.Logger.Debugw("request failed", append(fields, "error", err)...)
		return err
	}

	logging.Logger.Debugw("request handled", fields...)
	return nil
}
