package setup

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"Keyo/internal/retry"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/The127/ioc"
	"github.com/redis/go-redis/v9"
)

// Application is the dependency graph shared by the api and worker binaries.
type Application struct {
	Provider *ioc.DependencyProvider
	DB       *sql.DB
	Redis    *redis.Client
}

func NewApplication(ctx context.Context, c config.Config) (*Application, error) {
	dc := ioc.NewDependencyCollection()

	app := &Application{}

	retry.FiveTimes(func() error {
		db, err := ConnectDatabase(ctx, c.Database)
		app.DB = db
		return err
	}, "failed to connect to database")
	Database(dc, app.DB)

	app.Redis = Caching(dc, c.Cache)

	Services(dc)

	err := Delivery(ctx, dc, c)
	if err != nil {
		return nil, fmt.Errorf("setting up delivery: %w", err)
	}

	Authentication(dc, c.Auth)
	Repositories(dc, c.Database.Mode)
	Mediator(dc)

	app.Provider = dc.BuildProvider()

	return app, nil
}

func (a *Application) Close() error {
	var errs []error

	if a.Provider != nil {
		errs = append(errs, a.Provider.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}

	err := errors.Join(errs...)
	if err != nil {
		logging.Logger.Errorf("closing application: %v", err)
	}
	return err
}
