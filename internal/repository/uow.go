package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrTransactionActive = errors.New("transaction already active")
	ErrNoTransaction     = errors.New("no active transaction")
)

// UnitOfWork groups repository mutations into one atomic commit boundary.
// One instance corresponds to one logical operation; it is not safe for
// concurrent use and a transaction is never shared across callers.
type UnitOfWork struct {
	db       *sqlx.DB
	tx       *sqlx.Tx
	explicit bool // tx was opened via BeginTransaction, caller commits

	customers CustomersRepository
	orders    OrdersRepository
}

// UnitOfWorkFactory builds one UnitOfWork per operation.
type UnitOfWorkFactory struct {
	db *sqlx.DB
}

func NewUnitOfWorkFactory(db *sqlx.DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db}
}

func (f *UnitOfWorkFactory) New() *UnitOfWork {
	return &UnitOfWork{db: f.db}
}

// Customers returns the customer repository bound to this scope,
// constructing it on first use.
func (u *UnitOfWork) Customers() CustomersRepository {
	if u.customers == nil {
		u.customers = NewCustomersRepository(u)
	}
	return u.customers
}

// Orders returns the order repository bound to this scope,
// constructing it on first use.
func (u *UnitOfWork) Orders() OrdersRepository {
	if u.orders == nil {
		u.orders = NewOrdersRepository(u)
	}
	return u.orders
}

// reader returns the current statement target: the open transaction when one
// exists, otherwise the plain connection. Reads issued after a mutation in
// the same scope therefore observe pending writes.
func (u *UnitOfWork) reader() sqlx.ExtContext {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// writer is like reader but lazily opens the internal transaction, so that
// mutations stay pending until SaveChanges commits them.
func (u *UnitOfWork) writer(ctx context.Context) (sqlx.ExtContext, error) {
	if u.tx != nil {
		return u.tx, nil
	}
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	u.tx = tx
	return u.tx, nil
}

// SaveChanges commits mutations pending on the internal transaction. Inside
// an explicitly begun transaction it is a flush no-op: statements have
// already executed there and Commit decides their fate.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if u.tx == nil || u.explicit {
		return nil
	}
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("save changes: %w", err)
	}
	u.tx = nil
	return nil
}

// BeginTransaction opens a caller-managed transaction spanning multiple
// repository calls. It fails with ErrTransactionActive while any transaction
// (explicit or pending internal) is open.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	if u.tx != nil {
		return ErrTransactionActive
	}
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	u.tx = tx
	u.explicit = true
	return nil
}

// Commit commits the explicit transaction. Without one it fails with
// ErrNoTransaction.
func (u *UnitOfWork) Commit() error {
	if u.tx == nil || !u.explicit {
		return ErrNoTransaction
	}
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	u.tx = nil
	u.explicit = false
	return nil
}

// Rollback discards the explicit transaction. Without one it fails with
// ErrNoTransaction.
func (u *UnitOfWork) Rollback() error {
	if u.tx == nil || !u.explicit {
		return ErrNoTransaction
	}
	if err := u.tx.Rollback(); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	u.tx = nil
	u.explicit = false
	return nil
}

// Close rolls back any open transaction, discarding unsaved mutations.
// Idempotent, intended for defer.
func (u *UnitOfWork) Close() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback()
	u.tx = nil
	u.explicit = false
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
