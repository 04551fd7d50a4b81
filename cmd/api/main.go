// @title       Keyo notifications API
// @description Notification service of the Keyo polling platform.
// @BasePath    /

// Security schemes for the "Authorize" button (Swagger 2.0):
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @securityDefinitions.apikey ServiceKey
// @in                         header
// @name                       X-Service-Key
package main

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"Keyo/internal/server"
	"Keyo/internal/setup"
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Keyo/docs"

	"github.com/huandu/go-sqlbuilder"
)

func main() {
	config.Init()
	configureSwaggerFromConfig()

	sqlbuilder.DefaultFlavor = sqlbuilder.PostgreSQL

	logging.Init()
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := setup.NewApplication(ctx, config.C)
	if err != nil {
		logging.Logger.Fatalf("failed to set up application: %v", err)
	}
	defer func() { _ = app.Close() }()

	srv := server.Serve(app.Provider, config.C.Server)

	<-ctx.Done()
	logging.Logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		logging.Logger.Errorf("failed to shut down server: %v", err)
	}
}

func configureSwaggerFromConfig() {
	if config.C.Server.ExternalUrl != "" {
		if u, err := url.Parse(config.C.Server.ExternalUrl); err == nil {
			if u.Host != "" {
				docs.SwaggerInfo.Host = u.Host
			}

			if u.Scheme != "" {
				docs.SwaggerInfo.Schemes = []string{u.Scheme}
			}
		}
	} else {
		docs.SwaggerInfo.Host = fmt.Sprintf("%s:%d", config.C.Server.Host, config.C.Server.Port)
	}

	if len(docs.SwaggerInfo.Schemes) == 0 {
		docs.SwaggerInfo.Schemes = []string{"http"}
	}

	docs.SwaggerInfo.BasePath = "/"
}
