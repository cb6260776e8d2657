package commands

import (
	"context"
	"errors"
	"time"

	"buffet/internal/pkg/errs"
)

// DefaultCartMaxIdle is how long a cart may sit untouched before the sweep
// cancels it.
const DefaultCartMaxIdle = 24 * time.Hour

// CancelStaleCartsCommandHandler cancels carts whose customers walked away.
type CancelStaleCartsCommandHandler struct {
	uowFactory OrderUoWFactory
	maxIdle    time.Duration
	now        func() time.Time
}

// NewCancelStaleCartsCommandHandler creates a handler for the cart sweep.
// A non-positive maxIdle falls back to DefaultCartMaxIdle.
func NewCancelStaleCartsCommandHandler(
	uowFactory OrderUoWFactory, maxIdle time.Duration,
) CancelStaleCartsCommandHandler {
	if maxIdle <= 0 {
		maxIdle = DefaultCartMaxIdle
	}
	return CancelStaleCartsCommandHandler{
		uowFactory: uowFactory,
		maxIdle:    maxIdle,
		now:        time.Now,
	}
}

// Handle cancels every cart untouched for longer than the idle window and
// returns how many were cancelled. Each cancellation is a conditional write
// whose precondition includes the idle cutoff, so a cart the customer touches
// between the sweep's read and its write is silently left alone.
func (h CancelStaleCartsCommandHandler) Handle(ctx context.Context, cmd CancelStaleCartsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.now().UTC()
	cutoff := now.Add(-h.maxIdle)
	orderRepo := h.uowFactory.Create().OrderRepository()

	stale, err := orderRepo.GetCartsUpdatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, cart := range stale {
		err = orderRepo.CancelIdleCart(ctx, cart.ID(), cutoff, now)
		if err != nil {
			if errors.Is(err, errs.ErrPreconditionFailed) {
				continue
			}
			return cancelled, err
		}
		cancelled++
	}

	return cancelled, nil
}
