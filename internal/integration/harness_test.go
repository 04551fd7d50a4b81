//go:build integration

package integration

import (
	"Keyo/internal/authentication"
	"Keyo/internal/config"
	"Keyo/internal/database"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"Keyo/internal/setup"
	"Keyo/utils"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/The127/ioc"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
)

type harness struct {
	app    *setup.Application
	m      mediator.Mediator
	ctx    context.Context
	admin  config.PostgresConfig
	dbName string
}

func envOr(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func adminPostgresConfig() config.PostgresConfig {
	port, err := strconv.Atoi(envOr("KEYO_DATABASE_POSTGRES_PORT", "5432"))
	if err != nil {
		panic(fmt.Errorf("parsing postgres port: %w", err))
	}

	return config.PostgresConfig{
		Database: "postgres",
		Host:     envOr("KEYO_DATABASE_POSTGRES_HOST", "localhost"),
		Port:     port,
		Username: envOr("KEYO_DATABASE_POSTGRES_USERNAME", "keyo"),
		Password: envOr("KEYO_DATABASE_POSTGRES_PASSWORD", "keyo"),
		SslMode:  "disable",
	}
}

func execAsAdmin(pc config.PostgresConfig, query string) {
	db, err := database.ConnectToDatabase(pc)
	if err != nil {
		panic(err)
	}
	defer utils.PanicOnError(db.Close, "closing admin db connection in test")

	_, err = db.Exec(query)
	if err != nil {
		panic(err)
	}
}

func newIntegrationTestHarness() *harness {
	ctx := context.Background()
	sqlbuilder.DefaultFlavor = sqlbuilder.PostgreSQL

	admin := adminPostgresConfig()
	dbName := strings.ReplaceAll("keyo_test_"+uuid.New().String(), "-", "")
	execAsAdmin(admin, fmt.Sprintf("create database %s;", dbName))

	pc := admin
	pc.Database = dbName
	config.InitForEnvironment(config.EnvironmentDevelopment, config.Config{
		Database: config.DatabaseConfig{
			Mode:     config.DatabaseModePostgres,
			Postgres: pc,
		},
	})

	app, err := setup.NewApplication(ctx, config.C)
	if err != nil {
		panic(fmt.Errorf("setting up application: %w", err))
	}

	err = database.Migrate(ctx, app.DB)
	if err != nil {
		panic(fmt.Errorf("failed to create test database: %w", err))
	}

	ctx = middlewares.ContextWithScope(ctx, app.Provider)
	ctx = authentication.ContextWithCurrentUser(ctx, authentication.SystemUser())

	return &harness{
		app:    app,
		m:      ioc.GetDependency[mediator.Mediator](app.Provider),
		ctx:    ctx,
		admin:  admin,
		dbName: dbName,
	}
}

func (h *harness) Ctx() context.Context {
	return h.ctx
}

func (h *harness) Mediator() mediator.Mediator {
	return h.m
}

func (h *harness) Close() {
	err := h.app.Close()
	if err != nil {
		panic(err)
	}

	execAsAdmin(h.admin, fmt.Sprintf("drop database %s;", h.dbName))
}
