// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS split.
// All commands follow a consistent pattern: validation, transaction (or a
// single conditional write), persistence, and post-commit event publication.
package commands

import (
	"context"

	"buffet/internal/core/domain/model/item"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// Catalog resolves currently orderable items. Satisfied by the catalog cache;
// handlers depend on this narrow interface so tests can substitute it.
type Catalog interface {
	Find(ctx context.Context, id kernel.UUID) (item.Item, bool)
}

// EventPublisher receives StateChanged events after their transition has been
// committed. Publication is best-effort and must never fail the command:
// implementations record delivery problems instead of returning them, which
// is why the method has no error result.
type EventPublisher interface {
	Publish(ctx context.Context, evt order.StateChanged, aggregate *order.Order)
}
