package database

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*
var dbMigrations embed.FS

func MigrationSource() migrate.MigrationSource {
	return migrate.EmbedFileSystemMigrationSource{
		FileSystem: dbMigrations,
		Root:       "migrations",
	}
}

func Migrate(ctx context.Context, db *sql.DB) error {
	logger := logging.Named(config.DatabaseLogger)
	logger.Infof("Applying migrations...")

	n, err := migrate.ExecContext(ctx, db, "postgres", MigrationSource(), migrate.Up)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Infof("Applied %d migrations", n)
	return nil
}

func ConnectionString(pc config.PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		pc.Host,
		pc.Port,
		pc.Database,
		pc.Username,
		pc.Password,
		pc.SslMode,
	)
}

func ConnectToDatabase(pc config.PostgresConfig) (*sql.DB, error) {
	logging.Named(config.DatabaseLogger).Infof("Connecting to database %s via %s:%d",
		pc.Database,
		pc.Host,
		pc.Port,
	)

	db, err := sql.Open("postgres", ConnectionString(pc))
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	return db, nil
}
