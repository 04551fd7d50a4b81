package main

import (
	"Keyo/internal/config"
	"Keyo/internal/database"
	"Keyo/internal/logging"
	"Keyo/internal/retry"
	"Keyo/internal/setup"
	"context"
	"database/sql"
)

func main() {
	config.Init()

	logging.Init()
	defer logging.Close()

	ctx := context.Background()

	var db *sql.DB
	retry.FiveTimes(func() error {
		var err error
		db, err = setup.ConnectDatabase(ctx, config.C.Database)
		return err
	}, "failed to connect to database")
	defer func() { _ = db.Close() }()

	retry.FiveTimes(func() error {
		return database.Migrate(ctx, db)
	}, "failed to migrate database")
}
