package postgres

import (
	"Keyo/internal/repositories"
	"Keyo/utils"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/lib/pq"
)

type notificationPreferenceRepository struct {
}

func NewNotificationPreferenceRepository() repositories.NotificationPreferenceRepository {
	return &notificationPreferenceRepository{}
}

func (r *notificationPreferenceRepository) selectQuery(filter repositories.NotificationPreferenceFilter) *sqlbuilder.SelectBuilder {
	s := sqlbuilder.Select(
		"id",
		"audit_created_at",
		"audit_updated_at",
		"version",
		"profile_id",
		"type",
		"in_app_enabled",
		"push_enabled",
		"email_enabled",
		"is_enabled",
		"custom_thresholds",
	).From("notification_preferences")

	if filter.HasProfileId() {
		s.Where(s.Equal("profile_id", filter.GetProfileId()))
	}

	if filter.HasTypes() {
		s.Where(s.In("type", sqlbuilder.Flatten(filter.GetTypes())...))
	}

	s.OrderByAsc("type")

	return s
}

func (r *notificationPreferenceRepository) List(ctx context.Context, filter repositories.NotificationPreferenceFilter) ([]*repositories.NotificationPreference, error) {
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

	var result []*repositories.NotificationPreference
	for rows.Next() {
		preference := &repositories.NotificationPreference{
			ModelBase: repositories.NewModelBase(),
		}
		err = rows.Scan(preference.GetScanPointers()...)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result = append(result, preference)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return result, nil
}

func (r *notificationPreferenceRepository) First(ctx context.Context, filter repositories.NotificationPreferenceFilter) (*repositories.NotificationPreference, error) {
	tx, err := getTx(ctx)
	if err != nil {
		return nil, err
	}

	query, args := r.selectQuery(filter).Limit(1).Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	preference := &repositories.NotificationPreference{
		ModelBase: repositories.NewModelBase(),
	}
	err = row.Scan(preference.GetScanPointers()...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("scanning row: %w", err)
	}

	return preference, nil
}

func (r *notificationPreferenceRepository) Insert(ctx context.Context, preference *repositories.NotificationPreference) error {
	tx, err := getTx(ctx)
	if err != nil {
		return err
	}

	thresholds := utils.MapSlice(preference.CustomThresholds(), func(t int) int64 {
		return int64(t)
	})

	s := sqlbuilder.InsertInto("notification_preferences").
		Cols(
			"profile_id",
			"type",
			"in_app_enabled",
			"push_enabled",
			"email_enabled",
			"is_enabled",
			"custom_thresholds",
		).
		Values(
			preference.ProfileId(),
			preference.Type(),
			preference.InAppEnabled(),
			preference.PushEnabled(),
			preference.EmailEnabled(),
			preference.IsEnabled(),
			pq.Array(utils.EmptyIfNil(thresholds)),
		).Returning("id", "audit_created_at", "audit_updated_at", "version")

	query, args := s.Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	err = row.Scan(preference.InsertPointers()...)
	if err != nil {
		return fmt.Errorf("scanning row: %w", err)
	}

	preference.ClearChanges()
	return nil
}

func (r *notificationPreferenceRepository) Update(ctx context.Context, preference *repositories.NotificationPreference) error {
	return updateModel(ctx, "notification_preferences", preference)
}
