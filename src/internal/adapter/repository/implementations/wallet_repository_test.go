package implementations

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockUnitOfWork(t *testing.T) (*SQLUnitOfWork, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	uow, err := NewUnitOfWorkFactory(db, 0).Begin(context.Background())
	require.NoError(t, err)

	return uow.(*SQLUnitOfWork), mock
}

func TestWalletRepositoryGetBalance(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)
	repo := NewWalletRepository()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(balance, 0)")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("100.00"))

	balance, err := repo.GetBalance(context.Background(), uow, 7)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(100)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepositoryGetBalanceMissingWalletReadsZero(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)
	repo := NewWalletRepository()

	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))

	balance, err := repo.GetBalance(context.Background(), uow, 9)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepositoryGetBalanceClassifiesDriverErrors(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)
	repo := NewWalletRepository()

	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets")).
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "55P03"})

	_, err := repo.GetBalance(context.Background(), uow, 1)
	require.Error(t, err)

	var storeErr *domain.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "get balance", storeErr.Op)
	assert.Equal(t, "lock not available", storeErr.Reason)
}

func TestWalletRepositorySetBalance(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)
	repo := NewWalletRepository()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets")).
		WithArgs(int64(3), decimal.RequireFromString("70")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetBalance(context.Background(), uow, 3, decimal.RequireFromString("70"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepositorySetBalanceMissingWalletIsNotFound(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)
	repo := NewWalletRepository()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets")).
		WithArgs(int64(42), decimal.RequireFromString("10")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetBalance(context.Background(), uow, 42, decimal.RequireFromString("10"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))
}

func TestWalletRepositoryLockWallets(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)
	repo := NewWalletRepository()

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"contact_id"}).AddRow(int64(1)).AddRow(int64(2)))

	require.NoError(t, repo.LockWallets(context.Background(), uow, 2, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepositoryRejectsForeignUnitOfWork(t *testing.T) {
	repo := NewWalletRepository()

	_, err := repo.GetBalance(context.Background(), foreignUnitOfWork{}, 1)
	assert.Error(t, err)
}

type foreignUnitOfWork struct{}

func (foreignUnitOfWork) Commit() error   { return nil }
func (foreignUnitOfWork) Rollback() error { return nil }
