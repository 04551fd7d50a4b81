package handlers

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"Keyo/internal/middlewares"
	"context"
	"database/sql"
	"expvar"
	"net/http"
	"time"

	"github.com/The127/ioc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthResponseDto struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// ApplicationHealth returns 200 when the service and its database are reachable.
// @Summary     Application health
// @Tags        System
// @Produce     json
// @Success     200 {object} HealthResponseDto
// @Failure     503 {object} HealthResponseDto
// @Router      /health [get]
func ApplicationHealth(w http.ResponseWriter, r *http.Request) {
	scope := middlewares.GetScope(r.Context())
	db := ioc.GetDependency[*sql.DB](scope)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := db.PingContext(ctx)
	if err != nil {
		logging.Named(config.ServerLogger).Warnf("health check failed: %v", err)
		writeJson(w, http.StatusServiceUnavailable, HealthResponseDto{
			Status:   "unhealthy",
			Database: "unreachable",
		})
		return
	}

	writeJson(w, http.StatusOK, HealthResponseDto{
		Status:   "ok",
		Database: "ok",
	})
}

type DebugInfoDto struct {
	Environment   string `json:"environment"`
	SslRedirect   bool   `json:"sslRedirect"`
	HstsSeconds   int    `json:"hstsSeconds"`
	SecureCookies bool   `json:"secureCookies"`
	CacheMode     string `json:"cacheMode"`
	QueueMode     string `json:"queueMode"`
	MailMode      string `json:"mailMode"`
	PushMode      string `json:"pushMode"`
}

// DebugInfo reports the effective runtime toggles. Not registered in production.
// @Summary     Runtime toggles
// @Tags        Debug
// @Produce     json
// @Success     200 {object} DebugInfoDto
// @Router      /debug [get]
func DebugInfo(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, DebugInfoDto{
		Environment:   config.Environment(),
		SslRedirect:   config.C.Security.SslRedirect,
		HstsSeconds:   config.C.Security.HstsSeconds,
		SecureCookies: config.C.Security.SecureCookies,
		CacheMode:     string(config.C.Cache.Mode),
		QueueMode:     string(config.C.Queue.Mode),
		MailMode:      string(config.C.Mail.Mode),
		PushMode:      string(config.C.Push.Mode),
	})
}

// ExpvarVars proxies the standard expvar handler.
// @Summary     Expvar variables
// @Description Exposes runtime/app stats (Go's expvar) as JSON.
// @Tags        Debug
// @Produce     json
// @Success     200 {string} string "expvar JSON"
// @Router      /debug/vars [get]
func ExpvarVars(w http.ResponseWriter, r *http.Request) {
	expvar.Handler().ServeHTTP(w, r)
}

// PrometheusMetrics proxies the promhttp handler.
// @Summary     Prometheus metrics
// @Description Exposes Prometheus metrics in text exposition format.
// @Tags        Monitoring
// @Produce     plain
// @Success     200 {string} string "Prometheus exposition format (text/plain; version=0.0.4)"
// @Router      /metrics [get]
func PrometheusMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
