package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/middleware"
	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/models"
	"github.com/api-sage/remittance-wallet/src/internal/commons"
	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/api-sage/remittance-wallet/src/internal/logger"
	"github.com/api-sage/remittance-wallet/src/internal/usecase/service_interfaces"
)

const maxBodyBytes = 1 << 16

type WalletController struct {
	sendMoney service_interfaces.SendMoneyService
	queries   service_interfaces.WalletQueryService
}

func NewWalletController(sendMoney service_interfaces.SendMoneyService, queries service_interfaces.WalletQueryService) *WalletController {
	return &WalletController{sendMoney: sendMoney, queries: queries}
}

func (c *WalletController) RegisterRoutes(mux *http.ServeMux, mw func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/api/wallet/contacts":             c.contacts,
		"/api/wallet/balance":              c.balance,
		"/api/wallet/transactions_history": c.transactionsHistory,
		"/api/wallet/send":                 c.send,
	}

	for pattern, handler := range routes {
		var h http.Handler = handler
		if mw != nil {
			h = mw(h)
		}
		mux.Handle(pattern, h)
	}
}

func (c *WalletController) send(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		methodNotAllowed[models.SendMoneyResponse](w, r, http.MethodPost, start)
		return
	}

	var req models.SendMoneyRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.SendMoneyResponse]("invalid request body", err.Error())
		respond(w, r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.sendMoney.SendMoney(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logError(r, err, logger.Fields{"message": response.Message})
		}
		respond(w, r, status, response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *WalletController) contacts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		methodNotAllowed[[]models.ContactResponse](w, r, http.MethodGet, start)
		return
	}

	response, err := c.queries.GetContacts(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, http.StatusInternalServerError, response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *WalletController) balance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		methodNotAllowed[[]models.BalanceResponse](w, r, http.MethodGet, start)
		return
	}

	response, err := c.queries.GetBalances(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, http.StatusInternalServerError, response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *WalletController) transactionsHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		methodNotAllowed[[]models.TransactionDetailsResponse](w, r, http.MethodGet, start)
		return
	}

	response, err := c.queries.GetTransactionHistory(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, http.StatusInternalServerError, response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

// statusFor maps a transfer failure to its HTTP status. Client mistakes are 400,
// everything else is reported as a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func methodNotAllowed[T any](w http.ResponseWriter, r *http.Request, allow string, start time.Time) {
	w.Header().Set("Allow", allow)
	respond(w, r, http.StatusMethodNotAllowed, commons.ErrorResponse[T]("method not allowed"), start)
}

func respond[T any](w http.ResponseWriter, r *http.Request, status int, response commons.Response[T], start time.Time) {
	response = response.WithRequestID(middleware.RequestIDFrom(r.Context()))
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
