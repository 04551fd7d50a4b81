package repositories

import (
	"Keyo/utils"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type OutboxMessageType string

const (
	SendMailOutboxMessageType OutboxMessageType = "send_mail"
	SendPushOutboxMessageType OutboxMessageType = "send_push"
)

type OutboxMessageDetails interface {
	OutboxMessageType() OutboxMessageType
}

type OutboxMessage struct {
	ModelBase

	_type     OutboxMessageType
	details   []byte
	attempts  int
	lastError *string
}

func (m *OutboxMessage) GetScanPointers() []any {
	return []any{
		&m.id,
		&m.auditCreatedAt,
		&m.auditUpdatedAt,
		&m.version,
		&m._type,
		&m.details,
		&m.attempts,
		&m.lastError,
	}
}

func (m *OutboxMessage) Type() OutboxMessageType {
	return m._type
}

func (m *OutboxMessage) Details() []byte {
	return m.details
}

func (m *OutboxMessage) Attempts() int {
	return m.attempts
}

func (m *OutboxMessage) LastError() *string {
	return m.lastError
}

// RecordFailure counts a failed delivery attempt.
func (m *OutboxMessage) RecordFailure(err error) {
	m.attempts++
	message := err.Error()
	m.lastError = &message
	m.TrackChange("attempts", m.attempts)
	m.TrackChange("last_error", message)
}

func NewOutboxMessage(details OutboxMessageDetails) (*OutboxMessage, error) {
	serialized, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("serializing outbox message details: %w", err)
	}

	return &OutboxMessage{
		ModelBase: NewModelBase(),
		_type:     details.OutboxMessageType(),
		details:   serialized,
	}, nil
}

type OutboxMessageFilter struct {
	id          *uuid.UUID
	maxAttempts *int
	limit       *int
}

func NewOutboxMessageFilter() OutboxMessageFilter {
	return OutboxMessageFilter{}
}

func (f OutboxMessageFilter) Clone() OutboxMessageFilter {
	return f
}

func (f OutboxMessageFilter) Id(id uuid.UUID) OutboxMessageFilter {
	filter := f.Clone()
	filter.id = &id
	return filter
}

func (f OutboxMessageFilter) HasId() bool {
	return f.id != nil
}

func (f OutboxMessageFilter) GetId() uuid.UUID {
	return utils.ZeroIfNil(f.id)
}

// AttemptsBelow keeps messages that failed fewer than maxAttempts times.
func (f OutboxMessageFilter) AttemptsBelow(maxAttempts int) OutboxMessageFilter {
	filter := f.Clone()
	filter.maxAttempts = &maxAttempts
	return filter
}

func (f OutboxMessageFilter) HasAttemptsBelow() bool {
	return f.maxAttempts != nil
}

func (f OutboxMessageFilter) GetAttemptsBelow() int {
	return utils.ZeroIfNil(f.maxAttempts)
}

func (f OutboxMessageFilter) Limit(limit int) OutboxMessageFilter {
	filter := f.Clone()
	filter.limit = &limit
	return filter
}

func (f OutboxMessageFilter) HasLimit() bool {
	return f.limit != nil
}

func (f OutboxMessageFilter) GetLimit() int {
	return utils.ZeroIfNil(f.limit)
}

//go:generate mockgen -destination=./mocks/outboxmessage_repository.go -package=mocks Keyo/internal/repositories OutboxMessageRepository
type OutboxMessageRepository interface {
	List(ctx context.Context, filter OutboxMessageFilter) ([]*OutboxMessage, error)
	Insert(ctx context.Context, outboxMessage *OutboxMessage) error
	Update(ctx context.Context, outboxMessage *OutboxMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
}
