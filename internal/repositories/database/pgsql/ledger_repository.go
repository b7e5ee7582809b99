package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/dealership_ledger/internal/models"
	"github.com/SscSPs/dealership_ledger/internal/utils/mapping"
	"github.com/SscSPs/dealership_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository stores the ledger in PostgreSQL. RunAtomic maps to one database
// transaction; the change feed is driven by LISTEN/NOTIFY triggers.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// RunAtomic runs fn inside a database transaction and commits only if fn succeeds.
func (r *PgxLedgerRepository) RunAtomic(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op after a successful commit

	if err := fn(&pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a person transaction by ID.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.PersonTransaction, error) {
	return getTransaction(ctx, r.Pool, transactionID, false)
}

// ListTransactions returns transactions ordered by (transaction_date, created_at, transaction_id).
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.PersonTransaction, error) {
	return listTransactions(ctx, r.Pool, filter, nil, 0)
}

// ListTransactionsPage pushes the cursor and the page size down into the query.
func (r *PgxLedgerRepository) ListTransactionsPage(ctx context.Context, filter domain.TransactionFilter, after *pagination.Cursor, limit int) ([]domain.PersonTransaction, error) {
	return listTransactions(ctx, r.Pool, filter, after, limit)
}

// FindSaleByID retrieves a vehicle sale by ID.
func (r *PgxLedgerRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.VehicleSale, error) {
	return getSale(ctx, r.Pool, saleID, false)
}

// ListSales returns sales ordered by (sale_date, sale_id).
func (r *PgxLedgerRepository) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.VehicleSale, error) {
	return listSales(ctx, r.Pool, filter)
}

// FindPersonByID retrieves a person with the current balance.
func (r *PgxLedgerRepository) FindPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	return getPerson(ctx, r.Pool, personID, false)
}

// GetCapitalBalances returns the three running balances keyed by type.
func (r *PgxLedgerRepository) GetCapitalBalances(ctx context.Context) (map[domain.CapitalType]domain.CapitalBalance, error) {
	return queryCapitalBalances(ctx, r.Pool)
}

// ListCapitalAdjustments returns the adjustment log in insertion order.
func (r *PgxLedgerRepository) ListCapitalAdjustments(ctx context.Context) ([]domain.CapitalAdjustment, error) {
	return queryCapitalAdjustments(ctx, r.Pool)
}

// GetCapitalSnapshot reads balances and the log inside one read-only REPEATABLE READ
// transaction, so both queries see the same commit point.
func (r *PgxLedgerRepository) GetCapitalSnapshot(ctx context.Context) (*domain.CapitalSnapshot, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin snapshot transaction", err)
	}
	defer r.Rollback(ctx, tx)

	balances, err := queryCapitalBalances(ctx, tx)
	if err != nil {
		return nil, err
	}
	adjs, err := queryCapitalAdjustments(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &domain.CapitalSnapshot{Balances: balances, Adjustments: adjs}, nil
}

func queryCapitalBalances(ctx context.Context, q querier) (map[domain.CapitalType]domain.CapitalBalance, error) {
	rows, err := q.Query(ctx, `SELECT capital_type, balance, last_updated_at FROM capital_balances`)
	if err != nil {
		return nil, persistErr("failed to query capital balances", err)
	}
	defer rows.Close()

	modelBalances, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CapitalBalance, error) {
		var b models.CapitalBalance
		err := row.Scan(&b.CapitalType, &b.Balance, &b.LastUpdatedAt)
		return b, err
	})
	if err != nil {
		return nil, persistErr("failed to scan capital balances", err)
	}

	balances := make(map[domain.CapitalType]domain.CapitalBalance, len(modelBalances))
	for _, m := range modelBalances {
		b := mapping.ToDomainCapitalBalance(m)
		balances[b.Type] = b
	}
	return balances, nil
}

func queryCapitalAdjustments(ctx context.Context, q querier) ([]domain.CapitalAdjustment, error) {
	query := `
		SELECT adjustment_id, capital_type, delta, reason, transaction_ref, note, created_at, created_by
		FROM capital_adjustments
		ORDER BY seq;
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, persistErr("failed to query capital adjustments", err)
	}
	defer rows.Close()

	modelAdjs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CapitalAdjustment, error) {
		var a models.CapitalAdjustment
		err := row.Scan(&a.AdjustmentID, &a.CapitalType, &a.Delta, &a.Reason, &a.TransactionRef, &a.Note, &a.CreatedAt, &a.CreatedBy)
		return a, err
	})
	if err != nil {
		return nil, persistErr("failed to scan capital adjustments", err)
	}

	adjs := make([]domain.CapitalAdjustment, 0, len(modelAdjs))
	for _, m := range modelAdjs {
		adjs = append(adjs, mapping.ToDomainCapitalAdjustment(m))
	}
	return adjs, nil
}

func lockClause(forUpdate bool) string {
	if forUpdate {
		return " FOR UPDATE"
	}
	return ""
}

func getTransaction(ctx context.Context, q querier, transactionID string, forUpdate bool) (*domain.PersonTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM person_transactions WHERE transaction_id = $1` + lockClause(forUpdate)
	m, err := scanTransaction(q.QueryRow(ctx, query, transactionID))
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, persistErr("failed to get transaction "+transactionID, err)
	}
	txn, err := mapping.ToDomainPersonTransaction(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map transaction", err)
	}
	return &txn, nil
}

// transactionWhere builds the WHERE clause for a filter, numbering placeholders from 1.
func transactionWhere(filter domain.TransactionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		add("transaction_type = ANY($%d)", types)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		add("status = ANY($%d)", statuses)
	}
	if filter.PersonID != "" {
		add("person_id = $%d", filter.PersonID)
	}
	if filter.From != nil {
		add("transaction_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("transaction_date <= $%d", *filter.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// transactionQuery builds the listing query. Keyset pagination uses a row comparison on the
// ordering columns; limit <= 0 means no LIMIT.
func transactionQuery(filter domain.TransactionFilter, after *pagination.Cursor, limit int) (string, []any) {
	where, args := transactionWhere(filter)
	if after != nil {
		// Same column order as the ORDER BY.
		cursorClause := fmt.Sprintf("(transaction_date, created_at, transaction_id) > ($%d, $%d, $%d)", len(args)+1, len(args)+2, len(args)+3)
		args = append(args, after.Date, after.CreatedAt, after.ID)
		if where == "" {
			where = " WHERE " + cursorClause
		} else {
			where += " AND " + cursorClause
		}
	}
	query := `SELECT ` + transactionColumns + ` FROM person_transactions` + where +
		` ORDER BY transaction_date, created_at, transaction_id`
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	return query, args
}

func listTransactions(ctx context.Context, q querier, filter domain.TransactionFilter, after *pagination.Cursor, limit int) ([]domain.PersonTransaction, error) {
	query, args := transactionQuery(filter, after, limit)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistErr("failed to query transactions", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PersonTransaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, persistErr("failed to scan transactions", err)
	}

	txns := make([]domain.PersonTransaction, 0, len(modelTxns))
	for _, m := range modelTxns {
		txn, err := mapping.ToDomainPersonTransaction(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to map transaction", err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func getSale(ctx context.Context, q querier, saleID string, forUpdate bool) (*domain.VehicleSale, error) {
	query := `SELECT ` + saleColumns + ` FROM vehicle_sales WHERE sale_id = $1` + lockClause(forUpdate)
	m, err := scanSale(q.QueryRow(ctx, query, saleID))
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		return nil, persistErr("failed to get sale "+saleID, err)
	}
	sale := mapping.ToDomainVehicleSale(m)
	return &sale, nil
}

func saleWhere(filter domain.SaleFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.PurchaseType != "" {
		args = append(args, string(filter.PurchaseType))
		conds = append(conds, fmt.Sprintf("purchase_type = $%d", len(args)))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func listSales(ctx context.Context, q querier, filter domain.SaleFilter) ([]domain.VehicleSale, error) {
	where, args := saleWhere(filter)
	query := `SELECT ` + saleColumns + ` FROM vehicle_sales` + where + ` ORDER BY sale_date, sale_id`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistErr("failed to query sales", err)
	}
	defer rows.Close()

	modelSales, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.VehicleSale, error) {
		return scanSale(row)
	})
	if err != nil {
		return nil, persistErr("failed to scan sales", err)
	}

	sales := make([]domain.VehicleSale, 0, len(modelSales))
	for _, m := range modelSales {
		sales = append(sales, mapping.ToDomainVehicleSale(m))
	}
	return sales, nil
}

func getPerson(ctx context.Context, q querier, personID string, forUpdate bool) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE person_id = $1` + lockClause(forUpdate)
	m, err := scanPerson(q.QueryRow(ctx, query, personID))
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("%w: person %s", apperrors.ErrNotFound, personID)
		}
		return nil, persistErr("failed to get person "+personID, err)
	}
	person := mapping.ToDomainPerson(m)
	return &person, nil
}
