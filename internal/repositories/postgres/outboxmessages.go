package postgres

import (
	"Keyo/internal/repositories"
	"Keyo/utils"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
)

type outboxMessageRepository struct {
}

func NewOutboxMessageRepository() repositories.OutboxMessageRepository {
	return &outboxMessageRepository{}
}

func (r *outboxMessageRepository) selectQuery(filter repositories.OutboxMessageFilter) *sqlbuilder.SelectBuilder {
	s := sqlbuilder.Select(
		"id",
		"audit_created_at",
		"audit_updated_at",
		"version",
		"type",
		"details",
		"attempts",
		"last_error",
	).From("outbox_messages")

	if filter.HasId() {
		s.Where(s.Equal("id", filter.GetId()))
	}

	if filter.HasAttemptsBelow() {
		s.Where(s.LessThan("attempts", filter.GetAttemptsBelow()))
	}

	s.OrderByAsc("audit_created_at")

	if filter.HasLimit() {
		s.Limit(filter.GetLimit())
	}

	// concurrent workers skip rows another transaction is delivering
	s.SQL("for update skip locked")

	return s
}

func (r *outboxMessageRepository) List(ctx context.Context, filter repositories.OutboxMessageFilter) ([]*repositories.OutboxMessage, error) {
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

	var result []*repositories.OutboxMessage
	for rows.Next() {
		outboxMessage := &repositories.OutboxMessage{
			ModelBase: repositories.NewModelBase(),
		}
		err = rows.Scan(outboxMessage.GetScanPointers()...)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result = append(result, outboxMessage)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return result, nil
}

func (r *outboxMessageRepository) Insert(ctx context.Context, outboxMessage *repositories.OutboxMessage) error {
	tx, err := getTx(ctx)
	if err != nil {
		return err
	}

	s := sqlbuilder.InsertInto("outbox_messages").
		Cols("type", "details").
		Values(outboxMessage.Type(), string(outboxMessage.Details())).
		Returning("id", "audit_created_at", "audit_updated_at", "version")

	query, args := s.Build()
	logger().Debug("executing sql: ", query)
	row := tx.QueryRowContext(ctx, query, args...)

	err = row.Scan(outboxMessage.InsertPointers()...)
	if err != nil {
		return fmt.Errorf("scanning row: %w", err)
	}

	outboxMessage.ClearChanges()
	return nil
}

func (r *outboxMessageRepository) Update(ctx context.Context, outboxMessage *repositories.OutboxMessage) error {
	return updateModel(ctx, "outbox_messages", outboxMessage)
}

func (r *outboxMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	s := sqlbuilder.DeleteFrom("outbox_messages")
	s.Where(s.Equal("id", id))

	_, err := execCount(ctx, s)
	if err != nil {
		return fmt.Errorf("deleting outbox message: %w", err)
	}

	return nil
}
