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

type subscriptionRepository struct {
}

func NewSubscriptionRepository() repositories.SubscriptionRepository {
	return &subscriptionRepository{}
}

func (r *subscriptionRepository) selectQuery(filter repositories.SubscriptionFilter) *sqlbuilder.SelectBuilder {
	s := sqlbuilder.Select(
		"id",
		"audit_created_at",
		"audit_updated_at",
		"version",
		"follower_id",
		"target_type",
		"target_id",
		"active",
		"auto_followed",
	).From("subscriptions")

	if filter.HasFollowerId() {
		s.Where(s.Equal("follower_id", filter.GetFollowerId()))
	}

	if filter.HasTarget() {
		s.Where(
			s.Equal("target_type", filter.GetTargetType()),
			s.Equal("target_id", filter.GetTargetId()),
		)
	}

	if filter.HasActive() {
		s.Where(s.Equal("active", filter.GetActive()))
	}

	s.OrderByAsc("audit_created_at")

	return s
}

func (r *subscriptionRepository) List(ctx context.Context, filter repositories.SubscriptionFilter) ([]*repositories.Subscription, error) {
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

	var result []*repositories.Subscription
	for rows.Next() {
		subscription := &repositories.Subscription{
			ModelBase: repositories.NewModelBase(),
		}
		err = rows.Scan(subscription.GetScanPointers()...)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result = append(result, subscription)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return result, nil
}

func (r *subscriptionRepository) First(ctx context.Context, filter repositories.SubscriptionFilter) (*repositories.Subscription, error) {
	tx, err := getTx(ctx)
	if err != nil {
		return nil, err
	}

	query, args := r.selectQuery(filter).Limit(1).Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	subscription := &repositories.Subscription{
		ModelBase: repositories.NewModelBase(),
	}
	err = row.Scan(subscription.GetScanPointers()...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("scanning row: %w", err)
	}

	return subscription, nil
}

func (r *subscriptionRepository) Insert(ctx context.Context, subscription *repositories.Subscription) error {
	tx, err := getTx(ctx)
	if err != nil {
		return err
	}

	s := sqlbuilder.InsertInto("subscriptions").
		Cols(
			"follower_id",
			"target_type",
			"target_id",
			"active",
			"auto_followed",
		).
		Values(
			subscription.FollowerId(),
			subscription.TargetType(),
			subscription.TargetId(),
			subscription.Active(),
			subscription.AutoFollowed(),
		).Returning("id", "audit_created_at", "audit_updated_at", "version")

	query, args := s.Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	err = row.Scan(subscription.InsertPointers()...)
	if err != nil {
		return fmt.Errorf("scanning row: %w", err)
	}

	subscription.ClearChanges()
	return nil
}

func (r *subscriptionRepository) Update(ctx context.Context, subscription *repositories.Subscription) error {
	return updateModel(ctx, "subscriptions", subscription)
}
