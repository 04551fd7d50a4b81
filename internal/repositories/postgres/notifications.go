package postgres

import (
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"Keyo/utils"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
)

const priorityRank = "case priority when 'urgent' then 4 when 'high' then 3 when 'normal' then 2 else 1 end"

var notificationOrderColumns = map[string]string{
	"created_at": "audit_created_at",
	"read_at":    "read_at",
	"priority":   priorityRank,
}

type notificationRepository struct {
}

func NewNotificationRepository() repositories.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) applyFilter(s *sqlbuilder.SelectBuilder, filter repositories.NotificationFilter) {
	if filter.HasId() {
		s.Where(s.Equal("id", filter.GetId()))
	}

	if filter.HasRecipientId() {
		s.Where(s.Equal("recipient_id", filter.GetRecipientId()))
	}

	if filter.HasTypes() {
		s.Where(s.In("type", sqlbuilder.Flatten(filter.GetTypes())...))
	}

	if filter.HasPriority() {
		s.Where(s.Equal("priority", filter.GetPriority()))
	}

	if filter.HasIsRead() {
		s.Where(s.Equal("is_read", filter.GetIsRead()))
	}

	if filter.HasCreatedAfter() {
		s.Where(s.GreaterEqualThan("audit_created_at", filter.GetCreatedAfter()))
	}

	if filter.HasNotExpiredAt() {
		s.Where(s.Or(
			s.IsNull("expires_at"),
			s.GreaterThan("expires_at", filter.GetNotExpiredAt()),
		))
	}

	if filter.HasSearch() {
		term := filter.GetSearch().Pattern()
		s.Where(s.Or(
			s.ILike("title", term),
			s.ILike("message", term),
		))
	}
}

func (r *notificationRepository) selectQuery(filter repositories.NotificationFilter) *sqlbuilder.SelectBuilder {
	s := sqlbuilder.Select(
		"id",
		"audit_created_at",
		"audit_updated_at",
		"version",
		"recipient_id",
		"actor_id",
		"target_type",
		"target_id",
		"type",
		"title",
		"message",
		"click_url",
		"deep_link",
		"extra_data",
		"priority",
		"is_read",
		"read_at",
		"is_clicked",
		"clicked_at",
		"push_sent",
		"push_sent_at",
		"email_sent",
		"email_sent_at",
		"expires_at",
	).From("notifications")

	r.applyFilter(s, filter)

	if filter.HasOrder() {
		orderInfo := filter.GetOrderInfo()
		column, ok := notificationOrderColumns[orderInfo.OrderBy()]
		if ok {
			repositories.NewOrderInfo(column, orderInfo.OrderDir()).Apply(s)
		}
	}
	s.OrderByDesc("audit_created_at")

	if filter.HasPagination() {
		filter.GetPagingInfo().Apply(s)
	}

	return s
}

func (r *notificationRepository) List(ctx context.Context, filter repositories.NotificationFilter) ([]*repositories.Notification, int, error) {
	tx, err := getTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	s := r.selectQuery(filter)
	s.SelectMore("count(*) over()")

	query, args := s.Build()
	logger().Debug("executing sql: ", query)
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying db: %w", err)
	}
	defer utils.PanicOnError(rows.Close, "closing rows")

	var result []*repositories.Notification
	var totalCount int
	for rows.Next() {
		notification := &repositories.Notification{
			ModelBase: repositories.NewModelBase(),
		}
		err = rows.Scan(append(notification.GetScanPointers(), &totalCount)...)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning row: %w", err)
		}
		result = append(result, notification)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating rows: %w", err)
	}

	return result, totalCount, nil
}

func (r *notificationRepository) Single(ctx context.Context, filter repositories.NotificationFilter) (*repositories.Notification, error) {
	notification, err := r.First(ctx, filter)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, utils.ErrNotificationNotFound
	}
	return notification, nil
}

func (r *notificationRepository) First(ctx context.Context, filter repositories.NotificationFilter) (*repositories.Notification, error) {
	tx, err := getTx(ctx)
	if err != nil {
		return nil, err
	}

	s := r.selectQuery(filter).Limit(1)

	query, args := s.Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	notification := &repositories.Notification{
		ModelBase: repositories.NewModelBase(),
	}
	err = row.Scan(notification.GetScanPointers()...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("scanning row: %w", err)
	}

	return notification, nil
}

func (r *notificationRepository) Insert(ctx context.Context, notification *repositories.Notification) error {
	tx, err := getTx(ctx)
	if err != nil {
		return err
	}

	s := sqlbuilder.InsertInto("notifications").
		Cols(
			"recipient_id",
			"actor_id",
			"target_type",
			"target_id",
			"type",
			"title",
			"message",
			"click_url",
			"deep_link",
			"extra_data",
			"priority",
			"expires_at",
		).
		Values(
			notification.RecipientId(),
			notification.ActorId(),
			notification.TargetType(),
			notification.TargetId(),
			notification.Type(),
			notification.Title(),
			notification.Message(),
			notification.ClickUrl(),
			notification.DeepLink(),
			notification.ExtraData(),
			notification.Priority(),
			notification.ExpiresAt(),
		).Returning("id", "audit_created_at", "audit_updated_at", "version")

	query, args := s.Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	err = row.Scan(notification.InsertPointers()...)
	if err != nil {
		return fmt.Errorf("scanning row: %w", err)
	}

	notification.ClearChanges()
	return nil
}

func (r *notificationRepository) Update(ctx context.Context, notification *repositories.Notification) error {
	return updateModel(ctx, "notifications", notification)
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	s := sqlbuilder.DeleteFrom("notifications")
	s.Where(s.Equal("id", id))

	_, err := execCount(ctx, s)
	if err != nil {
		return fmt.Errorf("deleting notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, filter repositories.NotificationFilter, now time.Time) (int, error) {
	s := sqlbuilder.Update("notifications")
	s.Set(
		s.Assign("is_read", true),
		s.Assign("read_at", now),
		"audit_updated_at = now()",
		"version = version + 1",
	)
	s.Where(s.Equal("is_read", false))

	if filter.HasRecipientId() {
		s.Where(s.Equal("recipient_id", filter.GetRecipientId()))
	}

	if filter.HasTypes() {
		s.Where(s.In("type", sqlbuilder.Flatten(filter.GetTypes())...))
	}

	count, err := execCount(ctx, s)
	if err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}

	return count, nil
}

func (r *notificationRepository) Count(ctx context.Context, filter repositories.NotificationFilter) (int, error) {
	tx, err := getTx(ctx)
	if err != nil {
		return 0, err
	}

	s := sqlbuilder.Select("count(*)").From("notifications")
	r.applyFilter(s, filter)

	query, args := s.Build()
	logger().Debug("executing sql: ", query)

	var count int
	err = tx.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting notifications: %w", err)
	}

	return count, nil
}

func (r *notificationRepository) Counts(ctx context.Context, recipientId uuid.UUID, now time.Time, recentSince time.Time) (*repositories.NotificationCounts, error) {
	tx, err := getTx(ctx)
	if err != nil {
		return nil, err
	}

	counts := &repositories.NotificationCounts{
		ByType:           make(map[notifications.Type]int),
		UnreadByType:     make(map[notifications.Type]int),
		UnreadByPriority: make(map[notifications.Priority]int),
	}

	s := sqlbuilder.NewSelectBuilder()
	recent := s.Var(recentSince)
	s.Select(
		"count(*)",
		"count(*) filter (where not is_read)",
		fmt.Sprintf("count(*) filter (where audit_created_at >= %s)", recent),
		fmt.Sprintf("count(*) filter (where not is_read and audit_created_at >= %s)", recent),
	).From("notifications")
	r.whereVisible(s, recipientId, now)

	query, args := s.Build()
	logger().Debug("executing sql: ", query)
	err = tx.QueryRowContext(ctx, query, args...).Scan(
		&counts.Total,
		&counts.Unread,
		&counts.Recent,
		&counts.RecentUnread,
	)
	if err != nil {
		return nil, fmt.Errorf("counting notifications: %w", err)
	}

	byType, err := r.group(ctx, tx, "type", recipientId, now, false)
	if err != nil {
		return nil, err
	}
	for key, count := range byType {
		counts.ByType[notifications.Type(key)] = count
	}

	unreadByType, err := r.group(ctx, tx, "type", recipientId, now, true)
	if err != nil {
		return nil, err
	}
	for key, count := range unreadByType {
		counts.UnreadByType[notifications.Type(key)] = count
	}

	byPriority, err := r.group(ctx, tx, "priority", recipientId, now, true)
	if err != nil {
		return nil, err
	}
	for key, count := range byPriority {
		counts.UnreadByPriority[notifications.Priority(key)] = count
	}

	return counts, nil
}

func (r *notificationRepository) whereVisible(s *sqlbuilder.SelectBuilder, recipientId uuid.UUID, now time.Time) {
	s.Where(s.Equal("recipient_id", recipientId))
	s.Where(s.Or(
		s.IsNull("expires_at"),
		s.GreaterThan("expires_at", now),
	))
}

func (r *notificationRepository) group(ctx context.Context, tx *sql.Tx, column string, recipientId uuid.UUID, now time.Time, unreadOnly bool) (map[string]int, error) {
	s := sqlbuilder.Select(column, "count(*)").From("notifications")
	r.whereVisible(s, recipientId, now)
	if unreadOnly {
		s.Where(s.Equal("is_read", false))
	}
	s.GroupBy(column)

	query, args := s.Build()
	logger().Debug("executing sql: ", query)
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("grouping notifications by %s: %w", column, err)
	}
	defer utils.PanicOnError(rows.Close, "closing rows")

	result := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result[key] = count
	}

	return result, rows.Err()
}

func (r *notificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	s := sqlbuilder.DeleteFrom("notifications")
	s.Where(s.IsNotNull("expires_at"), s.LessThan("expires_at", now))

	count, err := execCount(ctx, s)
	if err != nil {
		return 0, fmt.Errorf("deleting expired notifications: %w", err)
	}

	return count, nil
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s := sqlbuilder.DeleteFrom("notifications")
	s.Where(s.Equal("is_read", true), s.LessThan("audit_created_at", cutoff))

	count, err := execCount(ctx, s)
	if err != nil {
		return 0, fmt.Errorf("deleting old read notifications: %w", err)
	}

	return count, nil
}
