// Package postgres provides the GORM-based Unit of Work implementation.
//
// The Unit of Work coordinates a storage transaction across the repositories
// a business operation touches. Each operation gets a fresh instance from
// the factory; instances are not safe for concurrent use.
//
// Usage:
//
//	factory := postgres.NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, cart); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rolling back after a successful commit is a no-op error that the deferred
// call above deliberately ignores. Repository accessors return repositories
// bound to the active transaction when one has been begun, and to the base
// connection otherwise; single-statement operations such as the conditional
// status transition skip Begin entirely.
package postgres

import (
	"context"

	"buffet/internal/adapters/out/postgres/orderrepo"
	"buffet/internal/adapters/out/postgres/profilerepo"
	"buffet/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances over one GORM
// connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates a single database transaction for one business
// operation.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin initiates a new database transaction. Calling Begin again on an
// instance with an active transaction is a no-op rather than a nested
// transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the current transaction. Returns
// gorm.ErrInvalidTransaction when none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction. Returns
// gorm.ErrInvalidTransaction when none is active, which is the usual case
// for a deferred rollback after a successful commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns the order repository bound to the active
// transaction, or to the base connection when none has been begun.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// ProfileRepository returns the profile repository bound to the active
// transaction, or to the base connection when none has been begun.
func (uow *GormUnitOfWork) ProfileRepository() ports.ProfileRepository {
	return profilerepo.NewGormProfileRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
