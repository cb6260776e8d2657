package order_test

import (
	"testing"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Unknown, "unknown"},
		{order.Cart, "cart"},
		{order.Pending, "pending"},
		{order.Preparing, "preparing"},
		{order.ReadyForPickup, "ready_for_pickup"},
		{order.Completed, "completed"},
		{order.Cancelled, "cancelled"},
		{order.Status(99), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Cart, order.Pending, order.Preparing,
			order.ReadyForPickup, order.Completed, order.Cancelled,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("invalid_statuses", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(99).Validate())
	})
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("checkout_from_cart", func(t *testing.T) {
		next, err := order.Cart.Checkout()
		require.NoError(t, err)
		assert.Equal(t, order.Pending, next)
	})

	t.Run("claim_from_pending", func(t *testing.T) {
		next, err := order.Pending.Claim()
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, next)
	})

	t.Run("ready_from_preparing", func(t *testing.T) {
		next, err := order.Preparing.Ready()
		require.NoError(t, err)
		assert.Equal(t, order.ReadyForPickup, next)
	})

	t.Run("complete_from_ready", func(t *testing.T) {
		next, err := order.ReadyForPickup.Complete()
		require.NoError(t, err)
		assert.Equal(t, order.Completed, next)
	})

	t.Run("cancel_from_cart", func(t *testing.T) {
		next, err := order.Cart.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)
	})
}

// TestStatus_IllegalTransitions walks every status through every transition
// and asserts that only the moves of the transition table succeed. In
// particular nothing leaves a terminal status.
func TestStatus_IllegalTransitions(t *testing.T) {
	all := []order.Status{
		order.Cart, order.Pending, order.Preparing,
		order.ReadyForPickup, order.Completed, order.Cancelled,
	}

	transitions := map[string]struct {
		move func(order.Status) (order.Status, error)
		from order.Status
	}{
		"checkout": {move: order.Status.Checkout, from: order.Cart},
		"claim":    {move: order.Status.Claim, from: order.Pending},
		"ready":    {move: order.Status.Ready, from: order.Preparing},
		"complete": {move: order.Status.Complete, from: order.ReadyForPickup},
		"cancel":   {move: order.Status.Cancel, from: order.Cart},
	}

	for name, tr := range transitions {
		for _, s := range all {
			if s == tr.from {
				continue
			}
			t.Run(name+"_from_"+s.String(), func(t *testing.T) {
				_, err := tr.move(s)
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
			})
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Cart.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Preparing.IsTerminal())
	assert.False(t, order.ReadyForPickup.IsTerminal())
}

func TestStatus_IsActive(t *testing.T) {
	assert.True(t, order.Pending.IsActive())
	assert.True(t, order.Preparing.IsActive())
	assert.True(t, order.ReadyForPickup.IsActive())
	assert.False(t, order.Cart.IsActive())
	assert.False(t, order.Completed.IsActive())
	assert.False(t, order.Cancelled.IsActive())
}

func TestStation(t *testing.T) {
	t.Run("parses_persisted_strings", func(t *testing.T) {
		left, err := order.StationFromString("left")
		require.NoError(t, err)
		assert.Equal(t, order.StationLeft, left)

		right, err := order.StationFromString("right")
		require.NoError(t, err)
		assert.Equal(t, order.StationRight, right)
	})

	t.Run("rejects_unknown_strings", func(t *testing.T) {
		_, err := order.StationFromString("middle")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("no_station_is_not_assignable", func(t *testing.T) {
		require.Error(t, order.NoStation.Validate())
		require.NoError(t, order.StationLeft.Validate())
		require.NoError(t, order.StationRight.Validate())
	})

	t.Run("string_representations", func(t *testing.T) {
		assert.Equal(t, "left", order.StationLeft.String())
		assert.Equal(t, "right", order.StationRight.String())
		assert.Equal(t, "", order.NoStation.String())
	})
}
