package setup

import (
	"Keyo/internal/config"
	"Keyo/internal/database"
	"context"
	"database/sql"
	"fmt"

	"github.com/The127/ioc"
)

// ConnectDatabase opens the connection pool and checks that the server answers.
func ConnectDatabase(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	switch c.Mode {
	case config.DatabaseModePostgres:
		db, err := database.ConnectToDatabase(c.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}

		err = db.PingContext(ctx)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pinging postgres: %w", err)
		}

		return db, nil

	default:
		panic("database mode missing or not supported")
	}
}

// Database registers the pool together with the per-scope transaction service.
func Database(dc *ioc.DependencyCollection, db *sql.DB) {
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) *sql.DB {
		return db
	})

	ioc.RegisterScoped(dc, func(dp *ioc.DependencyProvider) database.DbService {
		return database.NewDbService(dp)
	})
	ioc.RegisterCloseHandler(dc, func(dbService database.DbService) error {
		return dbService.Close()
	})
}
