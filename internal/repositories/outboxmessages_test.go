package repositories

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type testDetails struct {
	To string `json:"to"`
}

func (testDetails) OutboxMessageType() OutboxMessageType {
	return SendMailOutboxMessageType
}

func TestOutboxFilter(t *testing.T) {
	// arrange
	f := NewOutboxMessageFilter()
	id := uuid.New()

	// act
	f = f.Id(id)

	// assert
	assert.Equal(t, &id, f.id)
	assert.False(t, NewOutboxMessageFilter().HasId())
}

func TestNewOutboxMessageSerializesDetails(t *testing.T) {
	// act
	message, err := NewOutboxMessage(testDetails{To: "ada@keyo.test"})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, SendMailOutboxMessageType, message.Type())
	assert.JSONEq(t, `{"to":"ada@keyo.test"}`, string(message.Details()))
}

func TestRecordFailure(t *testing.T) {
	// arrange
	message, err := NewOutboxMessage(testDetails{})
	assert.NoError(t, err)

	// act
	message.RecordFailure(errors.New("smtp down"))
	message.RecordFailure(errors.New("smtp still down"))

	// assert
	assert.Equal(t, 2, message.Attempts())
	assert.Equal(t, "smtp still down", *message.LastError())
	assert.Equal(t, 2, message.Changes()["attempts"])
}
