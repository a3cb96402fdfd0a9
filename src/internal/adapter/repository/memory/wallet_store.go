package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Store keeps contacts, wallets and transaction records in process. It implements
// every repository interface of the wallet service.
type Store struct {
	mu       sync.RWMutex
	contacts map[int64]domain.Contact
	balances map[int64]decimal.Decimal
	records  []domain.TransactionRecord
	nextID   int64

	// one-slot semaphores; a wallet is locked while its slot is full
	locks map[int64]chan struct{}
}

func NewStore() *Store {
	return &Store{
		contacts: make(map[int64]domain.Contact),
		balances: make(map[int64]decimal.Decimal),
		locks:    make(map[int64]chan struct{}),
	}
}

// NewSeededStore returns a store holding the demo contacts used by the SQL seed migration.
func NewSeededStore() *Store {
	s := NewStore()
	seed := []domain.Contact{
		{ID: 1, Name: "Amina Yusuf", Phone: "+2348010000001"},
		{ID: 2, Name: "Brian Otieno", Phone: "+254700000002"},
		{ID: 3, Name: "Chloe Martin", Phone: "+33600000003"},
		{ID: 4, Name: "Daniel Mensah", Phone: "+233200000004"},
		{ID: 5, Name: "Elena Rossi", Phone: "+393300000005"},
	}
	for _, c := range seed {
		s.AddContact(c, decimal.NewFromInt(1000))
	}
	return s
}

// AddContact registers a contact and opens its wallet with the given balance.
func (s *Store) AddContact(contact domain.Contact, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[contact.ID] = contact
	s.balances[contact.ID] = balance
}

// AddContactWithoutWallet registers a contact that owns no wallet row.
func (s *Store) AddContactWithoutWallet(contact domain.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[contact.ID] = contact
}

// Balance returns the committed balance and whether a wallet exists.
func (s *Store) Balance(contactID int64) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.balances[contactID]
	return b, ok
}

func (s *Store) Records() []domain.TransactionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TransactionRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Begin(ctx context.Context) (repo_interfaces.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.StoreError{Op: "begin unit of work", Reason: "canceled", Err: err}
	}
	return &unitOfWork{
		store:  s,
		staged: make(map[int64]decimal.Decimal),
		held:   make(map[int64]struct{}),
	}, nil
}

func (s *Store) lockFor(contactID int64) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[contactID]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[contactID] = l
	}
	return l
}

type unitOfWork struct {
	store  *Store
	staged map[int64]decimal.Decimal
	held   map[int64]struct{}
	done   bool
}

func (u *unitOfWork) acquire(ctx context.Context, contactID int64) error {
	if _, ok := u.held[contactID]; ok {
		return nil
	}

	select {
	case u.store.lockFor(contactID) <- struct{}{}:
		u.held[contactID] = struct{}{}
		return nil
	case <-ctx.Done():
		return &domain.StoreError{Op: "lock wallet", Reason: "lock not available", Err: ctx.Err()}
	}
}

func (u *unitOfWork) release() {
	for id := range u.held {
		<-u.store.lockFor(id)
	}
	u.held = nil
	u.done = true
}

func (u *unitOfWork) Commit() error {
	if u.done {
		return domain.ErrUnitOfWorkDone
	}

	u.store.mu.Lock()
	for id, balance := range u.staged {
		u.store.balances[id] = balance
	}
	u.store.mu.Unlock()

	u.release()
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.done {
		return domain.ErrUnitOfWorkDone
	}
	u.staged = nil
	u.release()
	return nil
}

func unitOf(uow repo_interfaces.UnitOfWork) (*unitOfWork, error) {
	u, ok := uow.(*unitOfWork)
	if !ok || u == nil {
		return nil, errors.Errorf("unit of work %T does not belong to the memory store", uow)
	}
	if u.done {
		return nil, domain.ErrUnitOfWorkDone
	}
	return u, nil
}

func (s *Store) LockWallets(ctx context.Context, uow repo_interfaces.UnitOfWork, contactIDs ...int64) error {
	u, err := unitOf(uow)
	if err != nil {
		return err
	}

	ids := append([]int64(nil), contactIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := u.acquire(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetBalance(ctx context.Context, uow repo_interfaces.UnitOfWork, contactID int64) (decimal.Decimal, error) {
	u, err := unitOf(uow)
	if err != nil {
		return decimal.Zero, err
	}
	if err := u.acquire(ctx, contactID); err != nil {
		return decimal.Zero, err
	}

	if staged, ok := u.staged[contactID]; ok {
		return staged, nil
	}

	balance, _ := s.Balance(contactID)
	return balance, nil
}

func (s *Store) SetBalance(ctx context.Context, uow repo_interfaces.UnitOfWork, contactID int64, balance decimal.Decimal) error {
	u, err := unitOf(uow)
	if err != nil {
		return err
	}
	if err := u.acquire(ctx, contactID); err != nil {
		return err
	}

	if _, ok := s.Balance(contactID); !ok {
		return errors.Wrapf(domain.ErrRecordNotFound, "wallet for contact %d", contactID)
	}
	if balance.IsNegative() {
		return &domain.StoreError{Op: "set balance", Reason: "check constraint violated", Err: errors.New("balance cannot be negative")}
	}

	u.staged[contactID] = balance
	return nil
}

// CreateTransaction applies the same checks as the sp_transactions stored function.
func (s *Store) CreateTransaction(ctx context.Context, record domain.TransactionRecord) error {
	if err := ctx.Err(); err != nil {
		return &domain.AuditLogError{Code: domain.ResponseCodeError, Err: err}
	}
	if record.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ResponseCodeInvalidParameters.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[record.SenderContactID]; !ok {
		return domain.ResponseCodeInvalidSender.Err()
	}
	if _, ok := s.contacts[record.ReceiverContactID]; !ok {
		return domain.ResponseCodeInvalidReceiver.Err()
	}

	s.nextID++
	record.ID = s.nextID
	record.CreatedAt = time.Now().UTC()
	s.records = append(s.records, record)
	return nil
}

func (s *Store) GetAllContacts(_ context.Context) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetAllBalances(_ context.Context) ([]domain.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Balance, 0, len(s.balances))
	for id, amount := range s.balances {
		c, ok := s.contacts[id]
		if !ok {
			continue
		}
		out = append(out, domain.Balance{Name: c.Name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetAllTransactionDetails(_ context.Context) ([]domain.TransactionDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.TransactionDetails, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		r := s.records[i]
		out = append(out, domain.TransactionDetails{
			SenderName:   s.contacts[r.SenderContactID].Name,
			ReceiverName: s.contacts[r.ReceiverContactID].Name,
			Amount:       r.Amount,
		})
	}
	return out, nil
}
