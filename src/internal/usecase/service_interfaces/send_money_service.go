package service_interfaces

import (
	"context"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/models"
	"github.com/api-sage/remittance-wallet/src/internal/commons"
)

type SendMoneyService interface {
	SendMoney(ctx context.Context, req models.SendMoneyRequest) (commons.Response[models.SendMoneyResponse], error)
}
