package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/dealership_ledger/internal/utils/pagination"
)

// Store is an in-process ledger store. Writers are serialized and commit by swapping in a
// fully built state, so a failed unit of work leaves nothing behind.
type Store struct {
	writeMu sync.Mutex // serializes RunAtomic
	mu      sync.RWMutex
	current *state

	subsMu    sync.Mutex
	subs      map[int]subscriber
	nextSubID int

	commitHook func() error
}

// Option configures a Store.
type Option func(*Store)

// WithPersons seeds people.
func WithPersons(persons ...domain.Person) Option {
	return func(s *Store) {
		for _, p := range persons {
			s.current.persons[p.PersonID] = p
		}
	}
}

// WithProducts seeds inventory.
func WithProducts(products ...domain.Product) Option {
	return func(s *Store) {
		for _, p := range products {
			s.current.products[p.ProductID] = p
		}
	}
}

// WithCommitHook installs a function run just before a unit of work is committed.
// Returning an error aborts the commit.
func WithCommitHook(hook func() error) Option {
	return func(s *Store) {
		s.commitHook = hook
	}
}

// NewStore creates an empty store with zero capital balances.
func NewStore(opts ...Option) *Store {
	s := &Store{
		current: newState(),
		subs:    map[int]subscriber{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure Store implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*Store)(nil)

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// RunAtomic runs fn against a private copy of the store and publishes it only if fn succeeds.
func (s *Store) RunAtomic(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := s.snapshot().clone()
	if err := fn(&memTx{st: working}); err != nil {
		return err
	}
	if s.commitHook != nil {
		if err := s.commitHook(); err != nil {
			return apperrors.NewAppError(500, "failed to commit ledger changes", err)
		}
	}

	s.mu.Lock()
	s.current = working
	s.mu.Unlock()

	// Still under writeMu so subscribers see commits in order.
	s.publish(working)
	return nil
}

func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.PersonTransaction, error) {
	txn, ok := s.snapshot().transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := cloneTransaction(txn)
	return &out, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.PersonTransaction, error) {
	return s.snapshot().listTransactions(filter), nil
}

func (s *Store) ListTransactionsPage(ctx context.Context, filter domain.TransactionFilter, after *pagination.Cursor, limit int) ([]domain.PersonTransaction, error) {
	return pagination.After(s.snapshot().listTransactions(filter), after, limit, transactionCursor), nil
}

func (s *Store) FindSaleByID(ctx context.Context, saleID string) (*domain.VehicleSale, error) {
	sale, ok := s.snapshot().sales[saleID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := sale.Clone()
	return &out, nil
}

func (s *Store) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.VehicleSale, error) {
	return s.snapshot().listSales(filter), nil
}

func (s *Store) FindPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	p, ok := s.snapshot().persons[personID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

// FindProductByID returns a vehicle record outside of an atomic unit.
func (s *Store) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	p, ok := s.snapshot().products[productID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

// FindPurchaseByID returns a purchase record.
func (s *Store) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	p, ok := s.snapshot().purchases[purchaseID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := p.Clone()
	return &out, nil
}

func (s *Store) GetCapitalBalances(ctx context.Context) (map[domain.CapitalType]domain.CapitalBalance, error) {
	return s.snapshot().capitalBalances(), nil
}

func (s *Store) ListCapitalAdjustments(ctx context.Context) ([]domain.CapitalAdjustment, error) {
	st := s.snapshot()
	return append([]domain.CapitalAdjustment(nil), st.adjustments...), nil
}

// GetCapitalSnapshot reads balances and the log from the same committed state.
func (s *Store) GetCapitalSnapshot(ctx context.Context) (*domain.CapitalSnapshot, error) {
	st := s.snapshot()
	return &domain.CapitalSnapshot{
		Balances:    st.capitalBalances(),
		Adjustments: append([]domain.CapitalAdjustment(nil), st.adjustments...),
	}, nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, apperrors.ErrNotFound)
}
