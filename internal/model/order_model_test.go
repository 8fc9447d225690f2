package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"processing", "in-transit", "delivered", "cancelled"} {
		s, ok := ParseOrderStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, OrderStatus(valid), s)
	}
	for _, invalid := range []string{"", "shipped", "Processing", "done"} {
		_, ok := ParseOrderStatus(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{StatusProcessing, StatusInTransit, true},
		{StatusProcessing, StatusDelivered, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusInTransit, StatusDelivered, true},
		{StatusInTransit, StatusProcessing, true},
		{StatusProcessing, StatusProcessing, false},
		{StatusDelivered, StatusProcessing, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusProcessing, false},
		{StatusCancelled, StatusInTransit, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseRefundDecision(t *testing.T) {
	s, ok := ParseRefundDecision("approved")
	assert.True(t, ok)
	assert.Equal(t, RefundApproved, s)

	s, ok = ParseRefundDecision("rejected")
	assert.True(t, ok)
	assert.Equal(t, RefundRejected, s)

	_, ok = ParseRefundDecision("pending")
	assert.False(t, ok)
	_, ok = ParseRefundDecision("")
	assert.False(t, ok)
}
