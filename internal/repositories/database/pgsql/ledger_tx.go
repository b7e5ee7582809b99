package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/dealership_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// pgxLedgerTx runs every LedgerTx operation on one database transaction.
// Reads take row locks (SELECT ... FOR UPDATE) held until commit or rollback.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

// expectOne turns a zero-row UPDATE or DELETE into ErrNotFound.
func expectOne(tag pgconn.CommandTag, err error, kind, id string) error {
	if err != nil {
		return persistErr(fmt.Sprintf("failed to write %s %s", kind, id), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
	}
	return nil
}

func (t *pgxLedgerTx) GetTransaction(ctx context.Context, transactionID string) (*domain.PersonTransaction, error) {
	return getTransaction(ctx, t.tx, transactionID, true)
}

func (t *pgxLedgerTx) InsertTransaction(ctx context.Context, txn domain.PersonTransaction) error {
	m, err := mapping.ToModelPersonTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to map transaction", err)
	}
	query := `INSERT INTO person_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`
	_, err = t.tx.Exec(ctx, query,
		m.TransactionID, m.TransactionType, m.PersonID, m.PersonName, m.PersonType,
		m.Amount, m.CashAmount, m.BankAmount, m.CreditAmount, m.PaymentMethod, m.TransactionDate,
		m.OrderNumber, m.TransactionNumber, m.RelatedRef, m.Status, m.Description, m.Note,
		m.EffectCash, m.EffectBank, m.EffectCredit, m.EffectPerson, m.EmiProgress, m.ReversedAt, m.ReversedBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return persistErr("failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// UpdateTransaction rewrites the mutable lifecycle columns of a transaction.
func (t *pgxLedgerTx) UpdateTransaction(ctx context.Context, txn domain.PersonTransaction) error {
	m, err := mapping.ToModelPersonTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to map transaction", err)
	}
	query := `
		UPDATE person_transactions
		SET status = $2, description = $3, note = $4, reversed_at = $5, reversed_by = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1`
	tag, err := t.tx.Exec(ctx, query,
		m.TransactionID, m.Status, m.Description, m.Note, m.ReversedAt, m.ReversedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return expectOne(tag, err, "transaction", m.TransactionID)
}

func (t *pgxLedgerTx) GetSale(ctx context.Context, saleID string) (*domain.VehicleSale, error) {
	return getSale(ctx, t.tx, saleID, true)
}

func (t *pgxLedgerTx) InsertSale(ctx context.Context, sale domain.VehicleSale) error {
	m := mapping.ToModelVehicleSale(sale)
	query := `INSERT INTO vehicle_sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := t.tx.Exec(ctx, query,
		m.SaleID, m.CustomerID, m.VehicleID, m.PurchaseType, m.TotalAmount,
		m.DownPayment, m.DownPaymentCash, m.DownPaymentBank, m.Status, m.SaleDate,
		m.EmiInterestRate, m.EmiFrequency, m.EmiDurationMonths, m.EmiInstallmentsCount, m.EmiInstallmentAmount,
		m.EmiNextDueDate, m.EmiRemainingInstallments, m.EmiPaidInstallments,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return persistErr("failed to insert sale "+m.SaleID, err)
	}
	return nil
}

// UpdateSale persists status and EMI progress.
func (t *pgxLedgerTx) UpdateSale(ctx context.Context, sale domain.VehicleSale) error {
	m := mapping.ToModelVehicleSale(sale)
	query := `
		UPDATE vehicle_sales
		SET status = $2, emi_next_due_date = $3, emi_remaining_installments = $4, emi_paid_installments = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE sale_id = $1`
	tag, err := t.tx.Exec(ctx, query,
		m.SaleID, m.Status, m.EmiNextDueDate, m.EmiRemainingInstallments, m.EmiPaidInstallments, m.LastUpdatedAt, m.LastUpdatedBy)
	return expectOne(tag, err, "sale", m.SaleID)
}

func (t *pgxLedgerTx) DeleteSale(ctx context.Context, saleID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM vehicle_sales WHERE sale_id = $1`, saleID)
	return expectOne(tag, err, "sale", saleID)
}

func (t *pgxLedgerTx) GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE purchase_id = $1 FOR UPDATE`
	m, err := scanPurchase(t.tx.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, purchaseID)
		}
		return nil, persistErr("failed to get purchase "+purchaseID, err)
	}
	purchase := mapping.ToDomainPurchase(m)
	return &purchase, nil
}

func (t *pgxLedgerTx) InsertPurchase(ctx context.Context, purchase domain.Purchase) error {
	m := mapping.ToModelPurchase(purchase)
	query := `INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := t.tx.Exec(ctx, query,
		m.PurchaseID, m.PersonID, m.ProductID, m.TotalAmount, m.CashAmount, m.BankAmount, m.CreditAmount,
		m.Attachments, m.PurchaseDate, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return persistErr("failed to insert purchase "+m.PurchaseID, err)
	}
	return nil
}

func (t *pgxLedgerTx) DeletePurchase(ctx context.Context, purchaseID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM purchases WHERE purchase_id = $1`, purchaseID)
	return expectOne(tag, err, "purchase", purchaseID)
}

func (t *pgxLedgerTx) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 FOR UPDATE`
	m, err := scanProduct(t.tx.QueryRow(ctx, query, productID))
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
		return nil, persistErr("failed to get product "+productID, err)
	}
	product := mapping.ToDomainProduct(m)
	return &product, nil
}

// InsertProduct relies on products_chassis_number_key; a clash surfaces as ErrDuplicate.
func (t *pgxLedgerTx) InsertProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := t.tx.Exec(ctx, query,
		m.ProductID, m.ChassisNumber, m.Brand, m.Model, m.Year, m.Price, m.Sold, m.PurchaseRef,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return persistErr("failed to insert product "+m.ProductID, err)
	}
	return nil
}

func (t *pgxLedgerTx) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET brand = $2, model = $3, year = $4, price = $5, sold = $6, purchase_ref = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE product_id = $1`
	tag, err := t.tx.Exec(ctx, query,
		m.ProductID, m.Brand, m.Model, m.Year, m.Price, m.Sold, m.PurchaseRef, m.LastUpdatedAt, m.LastUpdatedBy)
	return expectOne(tag, err, "product", m.ProductID)
}

func (t *pgxLedgerTx) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	return expectOne(tag, err, "product", productID)
}

func (t *pgxLedgerTx) ChassisExists(ctx context.Context, chassisNumber string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE chassis_number = $1)`, chassisNumber).Scan(&exists)
	if err != nil {
		return false, persistErr("failed to check chassis number", err)
	}
	return exists, nil
}

func (t *pgxLedgerTx) GetPerson(ctx context.Context, personID string) (*domain.Person, error) {
	return getPerson(ctx, t.tx, personID, true)
}

func (t *pgxLedgerTx) AdjustPersonBalance(ctx context.Context, personID string, delta decimal.Decimal, userID string, at time.Time) error {
	query := `
		UPDATE persons
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE person_id = $1`
	tag, err := t.tx.Exec(ctx, query, personID, delta, at, userID)
	return expectOne(tag, err, "person", personID)
}

func (t *pgxLedgerTx) GetCapitalBalance(ctx context.Context, capitalType domain.CapitalType) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := t.tx.QueryRow(ctx, `SELECT balance FROM capital_balances WHERE capital_type = $1 FOR UPDATE`, string(capitalType)).Scan(&balance)
	if err != nil {
		if noRows(err) {
			return decimal.Zero, fmt.Errorf("%w: unknown capital type %q", apperrors.ErrValidation, capitalType)
		}
		return decimal.Zero, persistErr("failed to get capital balance", err)
	}
	return balance, nil
}

// AdjustCapital moves the running balance and appends the log entry in the same transaction.
func (t *pgxLedgerTx) AdjustCapital(ctx context.Context, adj domain.CapitalAdjustment) error {
	m := mapping.ToModelCapitalAdjustment(adj)
	tag, err := t.tx.Exec(ctx,
		`UPDATE capital_balances SET balance = balance + $2, last_updated_at = $3 WHERE capital_type = $1`,
		m.CapitalType, m.Delta, m.CreatedAt)
	if err != nil {
		return persistErr("failed to update capital balance", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: unknown capital type %q", apperrors.ErrValidation, m.CapitalType)
	}

	query := `
		INSERT INTO capital_adjustments (adjustment_id, capital_type, delta, reason, transaction_ref, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = t.tx.Exec(ctx, query, m.AdjustmentID, m.CapitalType, m.Delta, m.Reason, m.TransactionRef, m.Note, m.CreatedAt, m.CreatedBy)
	if err != nil {
		return persistErr("failed to insert capital adjustment", err)
	}
	return nil
}
