package postgres

import (
	"Keyo/internal/repositories"
	"Keyo/utils"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
)

type profileRepository struct {
}

func NewProfileRepository() repositories.ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) selectQuery(filter repositories.ProfileFilter) *sqlbuilder.SelectBuilder {
	s := sqlbuilder.Select(
		"id",
		"audit_created_at",
		"audit_updated_at",
		"version",
		"username",
		"display_name",
		"email",
	).From("profiles")

	if filter.HasId() {
		s.Where(s.Equal("id", filter.GetId()))
	}

	if filter.HasIds() {
		s.Where(s.In("id", sqlbuilder.Flatten(filter.GetIds())...))
	}

	s.OrderByAsc("username")

	return s
}

func (r *profileRepository) List(ctx context.Context, filter repositories.ProfileFilter) ([]*repositories.Profile, error) {
	tx, err := getTx(ctx)
	if err != nil {
		return nil, err
	}

	query, args := r.selectQuery(filter).Build()
	logger().Debug("executing sql: ", query)
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying db: %w", err)
	}
	defer utils.PanicOnError(rows.Close, "closing rows")

	var result []*repositories.Profile
	for rows.Next() {
		profile := &repositories.Profile{
			ModelBase: repositories.NewModelBase(),
		}
		err = rows.Scan(profile.GetScanPointers()...)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result = append(result, profile)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return result, nil
}

func (r *profileRepository) First(ctx context.Context, filter repositories.ProfileFilter) (*repositories.Profile, error) {
	tx, err := getTx(ctx)
	if err != nil {
		return nil, err
	}

	query, args := r.selectQuery(filter).Limit(1).Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	profile := &repositories.Profile{
		ModelBase: repositories.NewModelBase(),
	}
	err = row.Scan(profile.GetScanPointers()...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("scanning row: %w", err)
	}

	return profile, nil
}

func upsertProfileQuery(profile *repositories.Profile) *sqlbuilder.InsertBuilder {
	s := sqlbuilder.InsertInto("profiles").
		Cols("id", "username", "display_name", "email").
		Values(profile.Id(), profile.Username(), profile.DisplayName(), profile.Email())

	s.SQL("on conflict (id) do update set " +
		"username = excluded.username, " +
		"display_name = excluded.display_name, " +
		"email = excluded.email, " +
		"audit_updated_at = now(), " +
		"version = profiles.version + 1")
	s.Returning("id", "audit_created_at", "audit_updated_at", "version")

	return s
}

// Upsert stores the contact card under the platform id, replacing an older copy.
func (r *profileRepository) Upsert(ctx context.Context, profile *repositories.Profile) error {
	tx, err := getTx(ctx)
	if err != nil {
		return err
	}

	query, args := upsertProfileQuery(profile).Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	err = row.Scan(profile.InsertPointers()...)
	if err != nil {
		return fmt.Errorf("scanning row: %w", err)
	}

	profile.ClearChanges()
	return nil
}
