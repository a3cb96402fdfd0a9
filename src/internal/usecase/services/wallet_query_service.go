package services

import (
	"context"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/models"
	"github.com/api-sage/remittance-wallet/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/remittance-wallet/src/internal/commons"
	"github.com/api-sage/remittance-wallet/src/internal/logger"
)

type WalletQueryService struct {
	contacts repo_interfaces.ContactRepository
}

func NewWalletQueryService(contacts repo_interfaces.ContactRepository) *WalletQueryService {
	return &WalletQueryService{contacts: contacts}
}

func (s *WalletQueryService) GetContacts(ctx context.Context) (commons.Response[[]models.ContactResponse], error) {
	contacts, err := s.contacts.GetAllContacts(ctx)
	if err != nil {
		logger.Error("wallet query service get contacts failed", err, nil)
		return commons.ErrorResponse[[]models.ContactResponse]("failed to retrieve contacts", "An error occurred while retrieving contacts"), err
	}

	return commons.SuccessResponse("contacts retrieved", models.ContactsFromDomain(contacts)), nil
}

func (s *WalletQueryService) GetBalances(ctx context.Context) (commons.Response[[]models.BalanceResponse], error) {
	balances, err := s.contacts.GetAllBalances(ctx)
	if err != nil {
		logger.Error("wallet query service get balances failed", err, nil)
		return commons.ErrorResponse[[]models.BalanceResponse]("failed to retrieve balance", "An error occurred while retrieving balance"), err
	}

	return commons.SuccessResponse("balances retrieved", models.BalancesFromDomain(balances)), nil
}

func (s *WalletQueryService) GetTransactionHistory(ctx context.Context) (commons.Response[[]models.TransactionDetailsResponse], error) {
	details, err := s.contacts.GetAllTransactionDetails(ctx)
	if err != nil {
		logger.Error("wallet query service get transaction history failed", err, nil)
		return commons.ErrorResponse[[]models.TransactionDetailsResponse]("failed to retrieve transaction details", "An error occurred while retrieving transaction details"), err
	}

	return commons.SuccessResponse("transaction details retrieved", models.TransactionDetailsFromDomain(details)), nil
}
