package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Transition_HappyPath(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	order := &Order{Status: StatusPending}

	steps := []struct {
		next  Status
		stamp func() *time.Time
	}{
		{StatusConfirmed, func() *time.Time { return order.ConfirmedAt }},
		{StatusPreparing, func() *time.Time { return order.PreparingAt }},
		{StatusOutForDelivery, func() *time.Time { return order.OutForDeliveryAt }},
		{StatusDelivered, func() *time.Time { return order.DeliveredAt }},
	}

	for _, step := range steps {
		now = now.Add(5 * time.Minute)
		require.NoError(t, order.Transition(step.next, "", now))
		assert.Equal(t, step.next, order.Status)
		require.NotNil(t, step.stamp())
		assert.Equal(t, now, *step.stamp())
		assert.Equal(t, now, order.UpdatedAt)
	}
}

func TestOrder_Transition_CancelRecordsReason(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	order := &Order{Status: StatusConfirmed}

	err := order.Transition(StatusCanceled, "customer asked to cancel", now)
	require.NoError(t, err)

	assert.Equal(t, StatusCanceled, order.Status)
	require.NotNil(t, order.CanceledAt)
	assert.Equal(t, now, *order.CanceledAt)
	require.NotNil(t, order.CancelReason)
	assert.Equal(t, "customer asked to cancel", *order.CancelReason)
}

func TestOrder_Transition_CancelWithoutReason(t *testing.T) {
	order := &Order{Status: StatusPending}

	err := order.Transition(StatusCanceled, "", time.Now())
	require.NoError(t, err)
	assert.Nil(t, order.CancelReason)
}

func TestOrder_Transition_Invalid(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		from Status
		to   Status
	}{
		{"Skipping confirmation", StatusPending, StatusPreparing},
		{"Reviving a delivered order", StatusDelivered, StatusPreparing},
		{"Canceling a delivered order", StatusDelivered, StatusCanceled},
		{"Resurrecting a canceled order", StatusCanceled, StatusConfirmed},
		{"Moving backwards", StatusPreparing, StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{Status: tt.from}

			err := order.Transition(tt.to, "", now)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTransition)

			// The order must be left untouched.
			assert.Equal(t, tt.from, order.Status)
			assert.Nil(t, order.CanceledAt)
			assert.True(t, order.UpdatedAt.IsZero())
		})
	}
}

func TestOrder_AppendNote(t *testing.T) {
	first := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	second := first.Add(10 * time.Minute)

	order := &Order{}

	order.AppendNote("no onions", first)
	assert.Equal(t, "[2025-03-10 14:30:00] no onions", order.Notes)

	order.AppendNote("ring the bell twice", second)
	assert.Equal(t,
		"[2025-03-10 14:30:00] no onions\n[2025-03-10 14:40:00] ring the bell twice",
		order.Notes)
	assert.Equal(t, second, order.UpdatedAt)
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentCash.Valid())
	assert.True(t, PaymentCard.Valid())
	assert.True(t, PaymentPix.Valid())
	assert.False(t, PaymentMethod("cheque").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestDeliveryMode_Valid(t *testing.T) {
	assert.True(t, ModeDelivery.Valid())
	assert.True(t, ModePickup.Valid())
	assert.False(t, DeliveryMode("drone").Valid())
}
