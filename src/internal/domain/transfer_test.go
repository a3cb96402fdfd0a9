package domain_test

import (
	"errors"
	"testing"

	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     domain.TransferRequest
		problem string
	}{
		{"zero sender", domain.TransferRequest{FromContactID: 0, ToContactID: 2, Amount: decimal.NewFromInt(1)}, "fromContactId must be greater than 0"},
		{"negative receiver", domain.TransferRequest{FromContactID: 1, ToContactID: -4, Amount: decimal.NewFromInt(1)}, "toContactId must be greater than 0"},
		{"same contact", domain.TransferRequest{FromContactID: 5, ToContactID: 5, Amount: decimal.NewFromInt(10)}, "sender and receiver cannot be the same"},
		{"zero amount", domain.TransferRequest{FromContactID: 1, ToContactID: 2, Amount: decimal.Zero}, "amount must be greater than 0"},
		{"negative amount", domain.TransferRequest{FromContactID: 1, ToContactID: 2, Amount: decimal.RequireFromString("-0.01")}, "amount must be greater than 0"},
		{"sub-cent amount", domain.TransferRequest{FromContactID: 1, ToContactID: 2, Amount: decimal.RequireFromString("0.005")}, "amount must have at most 2 decimal places"},
		{"tenth of a cent", domain.TransferRequest{FromContactID: 1, ToContactID: 2, Amount: decimal.RequireFromString("10.001")}, "amount must have at most 2 decimal places"},
		{"amount beyond column range", domain.TransferRequest{FromContactID: 1, ToContactID: 2, Amount: decimal.RequireFromString("10000000000000000")}, "amount must be less than 10000000000000000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Contains(t, vErr.Problems, tc.problem)
		})
	}
}

func TestTransferRequestValidateAcceptsValidRequest(t *testing.T) {
	req := domain.TransferRequest{FromContactID: 1, ToContactID: 2, Amount: decimal.RequireFromString("0.01")}
	assert.NoError(t, req.Validate())

	record := req.Record()
	assert.Equal(t, int64(1), record.SenderContactID)
	assert.Equal(t, int64(2), record.ReceiverContactID)
	assert.True(t, record.Amount.Equal(decimal.RequireFromString("0.01")))

	largest := domain.TransferRequest{FromContactID: 1, ToContactID: 2, Amount: decimal.RequireFromString("9999999999999999.99")}
	assert.NoError(t, largest.Validate())

	trailingZeros := domain.TransferRequest{FromContactID: 1, ToContactID: 2, Amount: decimal.RequireFromString("12.500")}
	assert.NoError(t, trailingZeros.Validate())
}

func TestResponseCodeErr(t *testing.T) {
	assert.NoError(t, domain.ResponseCodeSuccess.Err())

	for _, code := range []domain.ResponseCode{
		domain.ResponseCodeError,
		domain.ResponseCodeInvalidParameters,
		domain.ResponseCodeInvalidSender,
		domain.ResponseCodeInvalidReceiver,
		domain.ResponseCode(999),
	} {
		err := code.Err()
		require.Error(t, err)

		var auditErr *domain.AuditLogError
		require.True(t, errors.As(err, &auditErr))
		assert.Equal(t, code, auditErr.Code)
	}

	assert.Equal(t, "unknown response code", domain.ResponseCode(999).Description())
}
