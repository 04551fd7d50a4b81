package authentication

import (
	"Keyo/internal/config"
	"Keyo/internal/middlewares"
	"Keyo/utils"
	"fmt"
	"net/http"
	"strings"

	"github.com/The127/ioc"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Middleware resolves the caller. Requests without credentials continue
// as an anonymous user; invalid credentials are rejected.
func Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			currentUser := NewCurrentUser(uuid.Nil)

			if serviceKey := r.Header.Get(ServiceKeyHeader); serviceKey != "" {
				verifier := ioc.GetDependency[ServiceKeyVerifier](middlewares.GetScope(ctx))
				if !verifier.Verify(serviceKey) {
					utils.HandleHttpError(w, fmt.Errorf("invalid service key: %w", utils.ErrHttpUnauthorized))
					return
				}
				currentUser = ServiceUser()
			} else if authorizationHeader := r.Header.Get("Authorization"); authorizationHeader != "" {
				profileId, err := extractProfileFromBearerToken(authorizationHeader)
				if err != nil {
					utils.HandleHttpError(w, fmt.Errorf("extracting profile from bearer token: %w", err))
					return
				}
				currentUser = NewCurrentUser(profileId)
			}

			next.ServeHTTP(w, r.WithContext(ContextWithCurrentUser(ctx, currentUser)))
		})
	}
}

func extractProfileFromBearerToken(authorizationHeader string) (uuid.UUID, error) {
	tokenString, ok := strings.CutPrefix(authorizationHeader, "Bearer ")
	if !ok || tokenString == "" {
		return uuid.Nil, utils.ErrHttpUnauthorized
	}

	return ParseProfileToken(tokenString, config.C.Auth.JwtSigningKey)
}

// RequireProfile rejects callers that are not an authenticated profile.
func RequireProfile() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			currentUser := GetCurrentUser(r.Context())
			if currentUser.ProfileId == uuid.Nil {
				utils.HandleHttpError(w, utils.ErrHttpUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireService rejects callers that did not present the service key.
func RequireService() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !GetCurrentUser(r.Context()).IsService {
				utils.HandleHttpError(w, utils.ErrHttpUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
