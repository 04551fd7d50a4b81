package audit

import (
	"Keyo/internal/behaviours"
	"Keyo/internal/logging"
	"context"
	"fmt"
)

const auditLogger = "audit"

func NewConsoleAuditLogger() behaviours.AuditLogger {
	return &consoleAuditLogger{}
}

type consoleAuditLogger struct {
}

func (c *consoleAuditLogger) Log(_ context.Context, policy behaviours.Policy, result behaviours.PolicyResult) error {
	logger := logging.Named(auditLogger)

	if result.IsAllowed() {
		logger.Infow("request allowed",
			"request", policy.GetRequestName(),
			"principal", result.Principal(),
			"reason", fmt.Sprint(result.Reason()))
	} else {
		logger.Warnw("request denied",
			"request", policy.GetRequestName(),
			"principal", result.Principal())
	}

	return nil
}
