// Package notifications fans order lifecycle events out to the people who
// need to hear about them: station operators when an order arrives, the
// customer as it moves toward pickup.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"buffet/internal/core/domain/model/item"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/domain/model/profile"
	"buffet/internal/core/ports"
)

// ItemNamer resolves item display names for message rendering. Satisfied by
// the catalog cache.
type ItemNamer interface {
	Find(ctx context.Context, id kernel.UUID) (item.Item, bool)
}

// Dispatcher turns StateChanged events into chat messages. Delivery is
// best-effort: a failed send is logged and never reported back to the
// transition that produced the event, and one failed recipient does not
// stop the rest of the fanout.
type Dispatcher struct {
	messenger ports.Messenger
	profiles  ports.ProfileRepository
	items     ItemNamer
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher over the given transport.
func NewDispatcher(
	messenger ports.Messenger,
	profiles ports.ProfileRepository,
	items ItemNamer,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		messenger: messenger,
		profiles:  profiles,
		items:     items,
		logger:    logger.With("component", "notifications"),
	}
}

// Publish routes the event by its destination status. Pending notifies the
// target station's operators with a claim action; Preparing and
// ReadyForPickup notify the customer; terminal statuses notify no one.
func (d *Dispatcher) Publish(ctx context.Context, evt order.StateChanged, aggregate *order.Order) {
	switch evt.To {
	case order.Pending:
		d.notifyOperators(ctx, aggregate)
	case order.Preparing:
		d.send(ctx, aggregate.CustomerID(), "Your order has been accepted and is being prepared.", nil)
	case order.ReadyForPickup:
		text := fmt.Sprintf("Your order is ready! Pick it up at the %s counter.", aggregate.Station())
		d.send(ctx, aggregate.CustomerID(), text, nil)
	case order.Completed, order.Cancelled, order.Cart, order.Unknown:
		// Nothing to announce.
	}
}

func (d *Dispatcher) notifyOperators(ctx context.Context, aggregate *order.Order) {
	role, err := profile.RoleForStation(aggregate.Station())
	if err != nil {
		d.logger.Error("resolve operator role",
			"order_id", aggregate.ID(), "station", aggregate.Station(), "error", err)
		return
	}

	operators, err := d.profiles.GetByRole(ctx, role)
	if err != nil {
		d.logger.Error("lookup operators",
			"order_id", aggregate.ID(), "role", role, "error", err)
		return
	}
	if len(operators) == 0 {
		d.logger.Warn("no operators registered for station",
			"order_id", aggregate.ID(), "station", aggregate.Station())
		return
	}

	text := d.renderNewOrder(ctx, aggregate)
	actions := []ports.Action{{
		Label: "Take order",
		Data:  "claim:" + aggregate.ID().String(),
	}}

	for _, op := range operators {
		d.send(ctx, op.UserID(), text, actions)
	}
}

func (d *Dispatcher) renderNewOrder(ctx context.Context, aggregate *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order at the %s counter:\n", aggregate.Station())

	for _, line := range aggregate.Items() {
		name := line.ItemID().String()
		if itm, ok := d.items.Find(ctx, line.ItemID()); ok {
			name = itm.Name()
		}
		fmt.Fprintf(&b, "  %s x%d\n", name, line.Quantity())
	}

	fmt.Fprintf(&b, "Total: %s", aggregate.Total().StringFixed(2))
	return b.String()
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, text string, actions []ports.Action) {
	if err := d.messenger.SendMessage(ctx, chatID, text, actions); err != nil {
		d.logger.Warn("message delivery failed", "chat_id", chatID, "error", err)
	}
}
