package implementations

import (
	"context"

	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/api-sage/remittance-wallet/src/internal/logger"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContactRepository serves the read-only projections. It never joins a unit of
// work, so it only observes committed balances.
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

type contactRow struct {
	ID    int64  `gorm:"column:id"`
	Name  string `gorm:"column:name"`
	Phone string `gorm:"column:phone"`
}

type balanceRow struct {
	Name   string          `gorm:"column:name"`
	Amount decimal.Decimal `gorm:"column:amount"`
}

type transactionDetailsRow struct {
	SenderName   string          `gorm:"column:sender_name"`
	ReceiverName string          `gorm:"column:receiver_name"`
	Amount       decimal.Decimal `gorm:"column:amount"`
}

func (r *ContactRepository) GetAllContacts(ctx context.Context) ([]domain.Contact, error) {
	const query = `SELECT id, name, phone FROM contacts ORDER BY id`

	var rows []contactRow
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		logger.Error("contact repository get contacts failed", err, nil)
		return nil, errors.Wrap(err, "get contacts")
	}

	contacts := make([]domain.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, domain.Contact{ID: row.ID, Name: row.Name, Phone: row.Phone})
	}

	logger.Debug("contact repository retrieved contacts", logger.Fields{"count": len(contacts)})
	return contacts, nil
}

func (r *ContactRepository) GetAllBalances(ctx context.Context) ([]domain.Balance, error) {
	const query = `
SELECT c.name,
       w.balance AS amount
FROM contacts c
INNER JOIN wallets w ON w.contact_id = c.id
ORDER BY c.name ASC`

	var rows []balanceRow
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		logger.Error("contact repository get balances failed", err, nil)
		return nil, errors.Wrap(err, "get balances")
	}

	balances := make([]domain.Balance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, domain.Balance{Name: row.Name, Amount: row.Amount})
	}

	logger.Debug("contact repository retrieved balances", logger.Fields{"count": len(balances)})
	return balances, nil
}

func (r *ContactRepository) GetAllTransactionDetails(ctx context.Context) ([]domain.TransactionDetails, error) {
	const query = `
SELECT c1.name AS sender_name,
       c2.name AS receiver_name,
       t.amount
FROM transactions t
INNER JOIN contacts c1 ON c1.id = t.sender_contact_id
INNER JOIN contacts c2 ON c2.id = t.receiver_contact_id
ORDER BY t.id DESC`

	var rows []transactionDetailsRow
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		logger.Error("contact repository get transaction details failed", err, nil)
		return nil, errors.Wrap(err, "get transaction details")
	}

	details := make([]domain.TransactionDetails, 0, len(rows))
	for _, row := range rows {
		details = append(details, domain.TransactionDetails{
			SenderName:   row.SenderName,
			ReceiverName: row.ReceiverName,
			Amount:       row.Amount,
		})
	}

	logger.Debug("contact repository retrieved transaction details", logger.Fields{"count": len(details)})
	return details, nil
}
