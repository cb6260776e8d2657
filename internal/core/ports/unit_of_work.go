package ports

import "context"

// UnitOfWork coordinates a storage transaction across repositories.
// Repository accessors return repositories bound to the active transaction
// when one has been begun, or to the base connection otherwise.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ProfileRepository() ProfileRepository
}

// UnitOfWorkFactory produces fresh UnitOfWork instances. Each business
// operation gets its own instance; instances are not reused across
// goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
