package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/SscSPs/dealership_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations outside of an atomic unit. Reads may lag the latest commit.
type LedgerReader interface {
	// FindTransactionByID retrieves a person transaction, returning apperrors.ErrNotFound if missing.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.PersonTransaction, error)

	// ListTransactions returns transactions matching filter ordered by (transactionDate, createdAt, id).
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.PersonTransaction, error)

	// ListTransactionsPage returns at most limit transactions matching filter that sort strictly
	// after the cursor, in the same order. A nil cursor starts from the beginning.
	ListTransactionsPage(ctx context.Context, filter domain.TransactionFilter, after *pagination.Cursor, limit int) ([]domain.PersonTransaction, error)

	// FindSaleByID retrieves a vehicle sale.
	FindSaleByID(ctx context.Context, saleID string) (*domain.VehicleSale, error)

	// ListSales returns sales matching filter.
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.VehicleSale, error)

	// FindPersonByID retrieves a person with the current balance.
	FindPersonByID(ctx context.Context, personID string) (*domain.Person, error)

	// GetCapitalBalances returns every capital balance keyed by type.
	GetCapitalBalances(ctx context.Context) (map[domain.CapitalType]domain.CapitalBalance, error)

	// ListCapitalAdjustments returns the full adjustment log in insertion order.
	ListCapitalAdjustments(ctx context.Context) ([]domain.CapitalAdjustment, error)

	// GetCapitalSnapshot returns the balances and the adjustment log as of one commit point,
	// so a write committing in between cannot make them disagree.
	GetCapitalSnapshot(ctx context.Context) (*domain.CapitalSnapshot, error)
}

// LedgerTx is the view of the store inside RunAtomic. Reads lock the rows they return
// until the unit of work ends.
type LedgerTx interface {
	GetTransaction(ctx context.Context, transactionID string) (*domain.PersonTransaction, error)
	InsertTransaction(ctx context.Context, txn domain.PersonTransaction) error
	UpdateTransaction(ctx context.Context, txn domain.PersonTransaction) error

	GetSale(ctx context.Context, saleID string) (*domain.VehicleSale, error)
	InsertSale(ctx context.Context, sale domain.VehicleSale) error
	UpdateSale(ctx context.Context, sale domain.VehicleSale) error
	DeleteSale(ctx context.Context, saleID string) error

	GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	InsertPurchase(ctx context.Context, purchase domain.Purchase) error
	DeletePurchase(ctx context.Context, purchaseID string) error

	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	InsertProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	// ChassisExists reports whether any product already uses the chassis number.
	ChassisExists(ctx context.Context, chassisNumber string) (bool, error)

	GetPerson(ctx context.Context, personID string) (*domain.Person, error)
	AdjustPersonBalance(ctx context.Context, personID string, delta decimal.Decimal, userID string, at time.Time) error

	GetCapitalBalance(ctx context.Context, capitalType domain.CapitalType) (decimal.Decimal, error)
	// AdjustCapital appends adj to the log and moves the running balance by adj.Delta.
	AdjustCapital(ctx context.Context, adj domain.CapitalAdjustment) error
}

// ChangeFeed delivers snapshots of the data matching a filter whenever it changes.
// The first snapshot is sent immediately; the channel is closed when ctx is cancelled.
// Snapshots are latest-wins: a slow consumer only ever sees the newest state.
type ChangeFeed interface {
	SubscribeTransactions(ctx context.Context, filter domain.TransactionFilter) (<-chan []domain.PersonTransaction, error)
	SubscribeSales(ctx context.Context, filter domain.SaleFilter) (<-chan []domain.VehicleSale, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	AtomicRunner
	ChangeFeed
}
