package middlewares

import (
	"Keyo/internal/config"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

const forwardedProtoHeader = "X-Forwarded-Proto"

// SecurityMiddleware redirects plain http requests and sets the HSTS header.
// The reverse proxy terminates TLS, so the scheme comes from X-Forwarded-Proto.
func SecurityMiddleware(sc config.SecurityConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secure := r.TLS != nil || r.Header.Get(forwardedProtoHeader) == "https"

			if sc.SslRedirect && !secure {
				target := "https://" + r.Host + r.URL.RequestURI()
				http.Redirect(w, r, target, http.StatusMovedPermanently)
				return
			}

			if sc.HstsSeconds > 0 && secure {
				w.Header().Set("Strict-Transport-Security", fmt.Sprintf("max-age=%d; includeSubDomains", sc.HstsSeconds))
			}

			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "same-origin")

			next.ServeHTTP(w, r)
		})
	}
}
