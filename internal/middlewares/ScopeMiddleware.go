package middlewares

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"context"
	"net/http"

	"github.com/The127/ioc"

	"github.com/gorilla/mux"
)

type scopeKeyType string

const ScopeKey scopeKeyType = "scope"

// ScopeMiddleware opens one dependency scope per request. Closing the scope
// commits the request's transaction.
func ScopeMiddleware(dp *ioc.DependencyProvider) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := dp.NewScope()
			defer func() {
				if err := scope.Close(); err != nil {
					logging.Named(config.ServerLogger).Errorw("failed to close request scope",
						"method", r.Method,
						"path", r.URL.Path,
						"error", err)
				}
			}()

			r = r.WithContext(ContextWithScope(r.Context(), scope))
			next.ServeHTTP(w, r)
		})
	}
}

func GetScope(ctx context.Context) *ioc.DependencyProvider {
	return ctx.Value(ScopeKey).(*ioc.DependencyProvider)
}

func ContextWithScope(ctx context.Context, scope *ioc.DependencyProvider) context.Context {
	return context.WithValue(ctx, ScopeKey, scope)
}
