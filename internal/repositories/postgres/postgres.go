package postgres

import (
	"Keyo/internal/config"
	"Keyo/internal/database"
	"Keyo/internal/logging"
	"Keyo/internal/middlewares"
	"Keyo/internal/repositories"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/The127/ioc"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"go.uber.org/zap"
)

// Row is satisfied by *sql.Row and *sql.Rows.
type Row interface {
	Scan(dest ...any) error
}

type trackedModel interface {
	Id() uuid.UUID
	Version() int64
	Changes() map[string]any
	HasChanges() bool
	UpdatePointers() []any
	ClearChanges()
}

func logger() *zap.SugaredLogger {
	return logging.Named(config.DatabaseLogger)
}

func getTx(ctx context.Context) (*sql.Tx, error) {
	scope := middlewares.GetScope(ctx)
	dbService := ioc.GetDependency[database.DbService](scope)

	tx, err := dbService.GetTx()
	if err != nil {
		return nil, fmt.Errorf("failed to open tx: %w", err)
	}

	return tx, nil
}

// buildUpdate writes the tracked changes guarded by the model version.
func buildUpdate(table string, model trackedModel) *sqlbuilder.UpdateBuilder {
	changes := model.Changes()

	s := sqlbuilder.Update(table)
	for _, fieldName := range slices.Sorted(maps.Keys(changes)) {
		s.SetMore(s.Assign(fieldName, changes[fieldName]))
	}
	s.SetMore("audit_updated_at = now()")
	s.SetMore(s.Assign("version", model.Version()+1))

	s.Where(s.Equal("id", model.Id()))
	s.Where(s.Equal("version", model.Version()))
	s.Returning("audit_updated_at", "version")

	return s
}

func updateModel(ctx context.Context, table string, model trackedModel) error {
	if !model.HasChanges() {
		return nil
	}

	tx, err := getTx(ctx)
	if err != nil {
		return err
	}

	query, args := buildUpdate(table, model).Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	err = row.Scan(model.UpdatePointers()...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("updating %s: %w", table, repositories.ErrVersionMismatch)
	case err != nil:
		return fmt.Errorf("scanning row: %w", err)
	}

	model.ClearChanges()
	return nil
}

func execCount(ctx context.Context, builder sqlbuilder.Builder) (int, error) {
	tx, err := getTx(ctx)
	if err != nil {
		return 0, err
	}

	query, args := builder.Build()
	logger().Debug("executing sql: ", query)
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("executing statement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}

	return int(affected), nil
}
