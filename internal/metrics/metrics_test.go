package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountDelivery(t *testing.T) {
	// arrange
	before := testutil.ToFloat64(Deliveries.WithLabelValues("email", ResultSent))

	// act
	CountDelivery("email", ResultSent)

	// assert
	after := testutil.ToFloat64(Deliveries.WithLabelValues("email", ResultSent))
	assert.Equal(t, before+1, after)
}
