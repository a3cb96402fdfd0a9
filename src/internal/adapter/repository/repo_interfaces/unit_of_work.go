package repo_interfaces

import "context"

// UnitOfWork is an all-or-nothing scope of ledger operations. Exactly one of
// Commit or Rollback takes effect; later calls return domain.ErrUnitOfWorkDone.
type UnitOfWork interface {
	Commit() error
	Rollback() error
}

type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
