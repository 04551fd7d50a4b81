package server

import (
	"Keyo/internal/authentication"
	"Keyo/internal/config"
	"Keyo/internal/handlers"
	"Keyo/internal/logging"
	"Keyo/internal/middlewares"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/The127/ioc"
	gh "github.com/gorilla/handlers"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "Keyo/docs"

	"github.com/gorilla/mux"
)

func NewRouter(dp *ioc.DependencyProvider) *mux.Router {
	r := mux.NewRouter()

	r.Use(middlewares.RecoverMiddleware())
	r.Use(middlewares.SecurityMiddleware(config.C.Security))
	r.Use(middlewares.LoggingMiddleware())
	r.Use(middlewares.ScopeMiddleware(dp))

	r.HandleFunc("/health", handlers.ApplicationHealth).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/metrics", handlers.PrometheusMetrics).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/debug/vars", handlers.ExpvarVars).Methods(http.MethodGet, http.MethodOptions)
	if !config.IsProduction() {
		r.HandleFunc("/debug", handlers.DebugInfo).Methods(http.MethodGet, http.MethodOptions)
	}

	apiRouter := r.PathPrefix("/api").Subrouter()

	apiRouter.Use(gh.CORS(
		gh.AllowedOrigins(config.C.Server.AllowedOrigins),
		gh.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "PATCH"}),
		gh.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		gh.AllowCredentials(),
		gh.MaxAge(3600),
	))
	apiRouter.Use(authentication.Middleware())
	apiRouter.Use(authentication.RequireProfile())

	notificationsRouter := apiRouter.PathPrefix("/notifications").Subrouter()

	notificationsRouter.HandleFunc("", handlers.ListNotifications).Methods(http.MethodGet, http.MethodOptions)
	notificationsRouter.HandleFunc("/summary", handlers.GetNotificationSummary).Methods(http.MethodGet, http.MethodOptions)
	notificationsRouter.HandleFunc("/unread-count", handlers.GetUnreadCount).Methods(http.MethodGet, http.MethodOptions)
	notificationsRouter.HandleFunc("/read-all", handlers.MarkAllNotificationsRead).Methods(http.MethodPatch, http.MethodOptions)

	notificationsRouter.HandleFunc("/preferences", handlers.ListNotificationPreferences).Methods(http.MethodGet, http.MethodOptions)
	notificationsRouter.HandleFunc("/preferences/bulk-update", handlers.BulkUpdateNotificationPreferences).Methods(http.MethodPost, http.MethodOptions)
	notificationsRouter.HandleFunc("/preferences/{channel}/{status}", handlers.ToggleChannel).Methods(http.MethodPost, http.MethodOptions)
	notificationsRouter.HandleFunc("/preferences/{type}", handlers.UpdateNotificationPreference).Methods(http.MethodPost, http.MethodOptions)

	notificationsRouter.HandleFunc("/devices", handlers.ListDevices).Methods(http.MethodGet, http.MethodOptions)
	notificationsRouter.HandleFunc("/devices", handlers.RegisterDevice).Methods(http.MethodPost, http.MethodOptions)
	notificationsRouter.HandleFunc("/devices/unregister", handlers.UnregisterDevice).Methods(http.MethodPost, http.MethodOptions)

	notificationsRouter.HandleFunc("/subscriptions", handlers.Subscribe).Methods(http.MethodPost, http.MethodOptions)
	notificationsRouter.HandleFunc("/subscriptions", handlers.Unsubscribe).Methods(http.MethodDelete, http.MethodOptions)

	notificationsRouter.HandleFunc("/{id}/read", handlers.MarkNotificationRead).Methods(http.MethodPatch, http.MethodOptions)
	notificationsRouter.HandleFunc("/{id}/click", handlers.ClickNotification).Methods(http.MethodPost, http.MethodOptions)
	notificationsRouter.HandleFunc("/{id}/email-preview", handlers.GetEmailPreview).Methods(http.MethodGet, http.MethodOptions)
	notificationsRouter.HandleFunc("/{id}", handlers.DeleteNotification).Methods(http.MethodDelete, http.MethodOptions)

	internalRouter := r.PathPrefix("/internal").Subrouter()
	internalRouter.Use(authentication.Middleware())
	internalRouter.Use(authentication.RequireService())

	internalRouter.HandleFunc("/notifications", handlers.SendNotification).Methods(http.MethodPost)
	internalRouter.HandleFunc("/events", handlers.PublishPlatformEvent).Methods(http.MethodPost)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}

// Serve starts the http server in the background. The returned server is used
// for graceful shutdown.
func Serve(dp *ioc.DependencyProvider, serverConfig config.ServerConfig) *http.Server {
	addr := fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port)
	logging.Named(config.ServerLogger).Infof("running server at %s", addr)
	srv := &http.Server{
		Handler:           NewRouter(dp),
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go serve(srv)

	return srv
}

func serve(srv *http.Server) {
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(fmt.Errorf("error while running server: %w", err))
	}
}
