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

type deviceRepository struct {
}

func NewDeviceRepository() repositories.DeviceRepository {
	return &deviceRepository{}
}

func (r *deviceRepository) selectQuery(filter repositories.DeviceFilter) *sqlbuilder.SelectBuilder {
	s := sqlbuilder.Select(
		"id",
		"audit_created_at",
		"audit_updated_at",
		"version",
		"profile_id",
		"token",
		"device_type",
		"device_id",
		"device_name",
		"active",
		"last_used_at",
	).From("devices")

	if filter.HasProfileId() {
		s.Where(s.Equal("profile_id", filter.GetProfileId()))
	}

	if filter.HasToken() {
		s.Where(s.Equal("token", filter.GetToken()))
	}

	if filter.HasActive() {
		s.Where(s.Equal("active", filter.GetActive()))
	}

	s.OrderByDesc("audit_created_at")

	return s
}

func (r *deviceRepository) List(ctx context.Context, filter repositories.DeviceFilter) ([]*repositories.Device, error) {
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

	var result []*repositories.Device
	for rows.Next() {
		device := &repositories.Device{
			ModelBase: repositories.NewModelBase(),
		}
		err = rows.Scan(device.GetScanPointers()...)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result = append(result, device)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return result, nil
}

func (r *deviceRepository) Single(ctx context.Context, filter repositories.DeviceFilter) (*repositories.Device, error) {
	device, err := r.First(ctx, filter)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, utils.ErrDeviceNotFound
	}
	return device, nil
}

func (r *deviceRepository) First(ctx context.Context, filter repositories.DeviceFilter) (*repositories.Device, error) {
	tx, err := getTx(ctx)
	if err != nil {
		return nil, err
	}

	query, args := r.selectQuery(filter).Limit(1).Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	device := &repositories.Device{
		ModelBase: repositories.NewModelBase(),
	}
	err = row.Scan(device.GetScanPointers()...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("scanning row: %w", err)
	}

	return device, nil
}

func (r *deviceRepository) Insert(ctx context.Context, device *repositories.Device) error {
	tx, err := getTx(ctx)
	if err != nil {
		return err
	}

	s := sqlbuilder.InsertInto("devices").
		Cols(
			"profile_id",
			"token",
			"device_type",
			"device_id",
			"device_name",
			"active",
			"last_used_at",
		).
		Values(
			device.ProfileId(),
			device.Token(),
			device.DeviceType(),
			device.DeviceId(),
			device.DeviceName(),
			device.Active(),
			device.LastUsedAt(),
		).Returning("id", "audit_created_at", "audit_updated_at", "version")

	query, args := s.Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	err = row.Scan(device.InsertPointers()...)
	if err != nil {
		return fmt.Errorf("scanning row: %w", err)
	}

	device.ClearChanges()
	return nil
}

func (r *deviceRepository) Update(ctx context.Context, device *repositories.Device) error {
	return updateModel(ctx, "devices", device)
}
