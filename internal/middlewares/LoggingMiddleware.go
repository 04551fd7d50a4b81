package middlewares

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
)

func LoggingMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			logger := logging.Named(config.ServerLogger)
			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", m.Code,
				"bytes", m.Written,
				"duration", m.Duration,
			}

			switch {
			case m.Code >= http.StatusInternalServerError:
				logger.Errorw("request", fields...)
			case m.Code >= http.StatusBadRequest:
				logger.Warnw("request", fields...)
			default:
				logger.Infow("request", fields...)
			}
		})
	}
}
