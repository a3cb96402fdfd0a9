package implementations

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/pkg/errors"
)

type UnitOfWorkFactory struct {
	db          *sql.DB
	lockTimeout time.Duration
}

func NewUnitOfWorkFactory(db *sql.DB, lockTimeout time.Duration) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db, lockTimeout: lockTimeout}
}

// Begin opens a READ COMMITTED transaction. Row locks taken inside it are held until
// Commit or Rollback; waiting for one is bounded by the lock timeout.
func (f *UnitOfWorkFactory) Begin(ctx context.Context) (repo_interfaces.UnitOfWork, error) {
	tx, err := f.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, storeError("begin unit of work", err)
	}

	if f.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", f.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return nil, storeError("set lock timeout", err)
		}
	}

	return &SQLUnitOfWork{tx: tx}, nil
}

type SQLUnitOfWork struct {
	tx *sql.Tx
}

func (u *SQLUnitOfWork) Commit() error {
	if err := u.tx.Commit(); err != nil {
		if stderrors.Is(err, sql.ErrTxDone) {
			return domain.ErrUnitOfWorkDone
		}
		return storeError("commit unit of work", err)
	}
	return nil
}

func (u *SQLUnitOfWork) Rollback() error {
	if err := u.tx.Rollback(); err != nil {
		if stderrors.Is(err, sql.ErrTxDone) {
			return domain.ErrUnitOfWorkDone
		}
		return storeError("rollback unit of work", err)
	}
	return nil
}

func txOf(uow repo_interfaces.UnitOfWork) (*sql.Tx, error) {
	u, ok := uow.(*SQLUnitOfWork)
	if !ok || u == nil || u.tx == nil {
		return nil, errors.Errorf("unit of work %T is not a postgres transaction", uow)
	}
	return u.tx, nil
}
