package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/api-sage/remittance-wallet/src/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenContacts struct{}

func (brokenContacts) GetAllContacts(context.Context) ([]domain.Contact, error) {
	return nil, errors.New("connection refused")
}

func (brokenContacts) GetAllBalances(context.Context) ([]domain.Balance, error) {
	return nil, errors.New("connection refused")
}

func (brokenContacts) GetAllTransactionDetails(context.Context) ([]domain.TransactionDetails, error) {
	return nil, errors.New("connection refused")
}

func TestWalletQueryServiceReflectsTransfers(t *testing.T) {
	store := newStore(t, map[int64]string{1: "100", 2: "50"})
	ctx := context.Background()
	require.NoError(t, newService(store).Transfer(ctx, domain.TransferRequest{FromContactID: 1, ToContactID: 2, Amount: dec("12.5")}))

	svc := services.NewWalletQueryService(store)

	contacts, err := svc.GetContacts(ctx)
	require.NoError(t, err)
	require.NotNil(t, contacts.Data)
	require.Len(t, *contacts.Data, 2)
	assert.Equal(t, "Amina", (*contacts.Data)[0].Name)

	balances, err := svc.GetBalances(ctx)
	require.NoError(t, err)
	require.Len(t, *balances.Data, 2)
	assert.Equal(t, "Amina", (*balances.Data)[0].Name)
	assert.Equal(t, "87.5", (*balances.Data)[0].Amount.String())
	assert.Equal(t, "62.5", (*balances.Data)[1].Amount.String())

	history, err := svc.GetTransactionHistory(ctx)
	require.NoError(t, err)
	require.Len(t, *history.Data, 1)
	assert.Equal(t, "Amina", (*history.Data)[0].SenderName)
	assert.Equal(t, "Brian", (*history.Data)[0].ReceiverName)
}

func TestWalletQueryServiceReportsStoreFailures(t *testing.T) {
	svc := services.NewWalletQueryService(brokenContacts{})
	ctx := context.Background()

	contacts, err := svc.GetContacts(ctx)
	require.Error(t, err)
	assert.False(t, contacts.Success)

	balances, err := svc.GetBalances(ctx)
	require.Error(t, err)
	assert.Equal(t, "failed to retrieve balance", balances.Message)

	history, err := svc.GetTransactionHistory(ctx)
	require.Error(t, err)
	assert.Nil(t, history.Data)
}
