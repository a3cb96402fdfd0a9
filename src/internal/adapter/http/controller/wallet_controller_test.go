package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/controller"
	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/middleware"
	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/models"
	"github.com/api-sage/remittance-wallet/src/internal/adapter/repository/memory"
	"github.com/api-sage/remittance-wallet/src/internal/commons"
	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/api-sage/remittance-wallet/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSendMoney struct{}

func (failingSendMoney) SendMoney(context.Context, models.SendMoneyRequest) (commons.Response[models.SendMoneyResponse], error) {
	return commons.ErrorResponse[models.SendMoneyResponse](services.MessageTransferFailed, "An error occurred while processing the transfer"),
		&domain.StoreError{Op: "commit", Err: errors.New("connection reset")}
}

func newMux(t *testing.T, store *memory.Store) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	c := controller.NewWalletController(
		services.NewSendMoneyService(store, store, store, time.Second),
		services.NewWalletQueryService(store),
	)
	c.RegisterRoutes(mux, middleware.RequestID)
	return mux
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) commons.Response[T] {
	t.Helper()
	var out commons.Response[T]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestWalletControllerSendSucceeds(t *testing.T) {
	store := memory.NewSeededStore()
	mux := newMux(t, store)

	rr := do(mux, http.MethodPost, "/api/wallet/send", `{"fromContactId":1,"toContactId":2,"amount":250.75}`)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[models.SendMoneyResponse](t, rr)
	assert.True(t, resp.Success)
	assert.Equal(t, services.MessageTransferred, resp.Message)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, resp.RequestID, rr.Header().Get(middleware.RequestIDHeader))

	balance, _ := store.Balance(1)
	assert.True(t, balance.Equal(decimal.RequireFromString("749.25")))
}

func TestWalletControllerSendClientErrors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{name: "insufficient funds", body: `{"fromContactId":1,"toContactId":2,"amount":5000}`, message: services.MessageInsufficientFunds},
		{name: "same contact", body: `{"fromContactId":3,"toContactId":3,"amount":5}`, message: services.MessageValidationFailed},
		{name: "zero amount", body: `{"fromContactId":1,"toContactId":2,"amount":0}`, message: services.MessageValidationFailed},
		{name: "sub-cent amount", body: `{"fromContactId":1,"toContactId":2,"amount":0.005}`, message: services.MessageValidationFailed},
		{name: "amount beyond range", body: `{"fromContactId":1,"toContactId":2,"amount":"10000000000000000"}`, message: services.MessageValidationFailed},
		{name: "malformed body", body: `{"fromContactId":`, message: "invalid request body"},
		{name: "unknown field", body: `{"from":1,"toContactId":2,"amount":1}`, message: "invalid request body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewSeededStore()
			rr := do(newMux(t, store), http.MethodPost, "/api/wallet/send", tc.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			resp := decode[models.SendMoneyResponse](t, rr)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.message, resp.Message)
			assert.Empty(t, store.Records())
		})
	}
}

func TestWalletControllerSendServerError(t *testing.T) {
	mux := http.NewServeMux()
	controller.NewWalletController(failingSendMoney{}, services.NewWalletQueryService(memory.NewStore())).RegisterRoutes(mux, nil)

	rr := do(mux, http.MethodPost, "/api/wallet/send", `{"fromContactId":1,"toContactId":2,"amount":1}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, services.MessageTransferFailed, decode[models.SendMoneyResponse](t, rr).Message)
}

func TestWalletControllerRejectsWrongMethods(t *testing.T) {
	mux := newMux(t, memory.NewSeededStore())

	rr := do(mux, http.MethodGet, "/api/wallet/send", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))

	rr = do(mux, http.MethodPost, "/api/wallet/balance", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestWalletControllerQueries(t *testing.T) {
	store := memory.NewSeededStore()
	mux := newMux(t, store)

	require.Equal(t, http.StatusOK, do(mux, http.MethodPost, "/api/wallet/send", `{"fromContactId":2,"toContactId":5,"amount":"10.10"}`).Code)

	rr := do(mux, http.MethodGet, "/api/wallet/contacts", "")
	require.Equal(t, http.StatusOK, rr.Code)
	contacts := decode[[]models.ContactResponse](t, rr)
	require.NotNil(t, contacts.Data)
	assert.Len(t, *contacts.Data, 5)

	rr = do(mux, http.MethodGet, "/api/wallet/balance", "")
	require.Equal(t, http.StatusOK, rr.Code)
	balances := decode[[]models.BalanceResponse](t, rr)
	require.Len(t, *balances.Data, 5)
	assert.Equal(t, "Brian Otieno", (*balances.Data)[1].Name)
	assert.True(t, (*balances.Data)[1].Amount.Equal(decimal.RequireFromString("989.90")))

	rr = do(mux, http.MethodGet, "/api/wallet/transactions_history", "")
	require.Equal(t, http.StatusOK, rr.Code)
	history := decode[[]models.TransactionDetailsResponse](t, rr)
	require.Len(t, *history.Data, 1)
	assert.Equal(t, "Brian Otieno", (*history.Data)[0].SenderName)
	assert.Equal(t, "Elena Rossi", (*history.Data)[0].ReceiverName)
}
