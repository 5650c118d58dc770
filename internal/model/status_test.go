package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		valid  bool
	}{
		{"Pending", StatusPending, true},
		{"Confirmed", StatusConfirmed, true},
		{"Preparing", StatusPreparing, true},
		{"Out for delivery", StatusOutForDelivery, true},
		{"Delivered", StatusDelivered, true},
		{"Canceled", StatusCanceled, true},
		{"Empty", Status(""), false},
		{"Unknown", Status("shipped"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"Pending to confirmed", StatusPending, StatusConfirmed, true},
		{"Pending to canceled", StatusPending, StatusCanceled, true},
		{"Pending to preparing skips confirmation", StatusPending, StatusPreparing, false},
		{"Pending to delivered skips everything", StatusPending, StatusDelivered, false},
		{"Confirmed to preparing", StatusConfirmed, StatusPreparing, true},
		{"Confirmed to canceled", StatusConfirmed, StatusCanceled, true},
		{"Confirmed back to pending", StatusConfirmed, StatusPending, false},
		{"Preparing to out for delivery", StatusPreparing, StatusOutForDelivery, true},
		{"Preparing to canceled", StatusPreparing, StatusCanceled, true},
		{"Preparing to delivered skips out for delivery", StatusPreparing, StatusDelivered, false},
		{"Out for delivery to delivered", StatusOutForDelivery, StatusDelivered, true},
		{"Out for delivery to canceled", StatusOutForDelivery, StatusCanceled, true},
		{"Delivered is terminal", StatusDelivered, StatusCanceled, false},
		{"Canceled is terminal", StatusCanceled, StatusPending, false},
		{"Canceled cannot be delivered", StatusCanceled, StatusDelivered, false},
		{"Unknown status goes nowhere", Status("shipped"), StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCanceled.Terminal())

	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.False(t, StatusPreparing.Terminal())
	assert.False(t, StatusOutForDelivery.Terminal())

	// Unknown statuses are invalid, not terminal.
	assert.False(t, Status("shipped").Terminal())
}

func TestStatus_NextStatuses(t *testing.T) {
	assert.ElementsMatch(t, []Status{StatusConfirmed, StatusCanceled}, StatusPending.NextStatuses())
	assert.ElementsMatch(t, []Status{StatusDelivered, StatusCanceled}, StatusOutForDelivery.NextStatuses())
	assert.Empty(t, StatusDelivered.NextStatuses())
	assert.Empty(t, StatusCanceled.NextStatuses())
}
