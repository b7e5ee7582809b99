package pgsql

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/SscSPs/dealership_ledger/internal/middleware"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ledgerChannel is the NOTIFY channel fed by the triggers in the init migration.
// The payload is the name of the table that changed.
const ledgerChannel = "ledger_changes"

// SubscribeTransactions streams transaction snapshots matching filter. Each subscription
// holds one pooled connection in LISTEN mode until ctx is cancelled.
func (r *PgxLedgerRepository) SubscribeTransactions(ctx context.Context, filter domain.TransactionFilter) (<-chan []domain.PersonTransaction, error) {
	load := func(ctx context.Context) ([]domain.PersonTransaction, error) {
		return listTransactions(ctx, r.Pool, filter, nil, 0)
	}
	return subscribe(ctx, r.Pool, "person_transactions", load)
}

// SubscribeSales streams sale snapshots matching filter.
func (r *PgxLedgerRepository) SubscribeSales(ctx context.Context, filter domain.SaleFilter) (<-chan []domain.VehicleSale, error) {
	load := func(ctx context.Context) ([]domain.VehicleSale, error) {
		return listSales(ctx, r.Pool, filter)
	}
	return subscribe(ctx, r.Pool, "vehicle_sales", load)
}

func subscribe[T any](ctx context.Context, pool *pgxpool.Pool, table string, load func(context.Context) ([]T, error)) (<-chan []T, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, persistErr("failed to acquire listener connection", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+ledgerChannel); err != nil {
		conn.Release()
		return nil, persistErr("failed to listen for ledger changes", err)
	}
	first, err := load(ctx)
	if err != nil {
		conn.Release()
		return nil, err
	}

	ch := make(chan []T, 1)
	ch <- first

	go func() {
		defer close(ch)
		defer func() {
			// The connection goes back to the pool; it must not keep listening.
			unlistenCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if _, err := conn.Exec(unlistenCtx, "UNLISTEN "+ledgerChannel); err != nil {
				conn.Conn().Close(unlistenCtx)
			}
			conn.Release()
		}()
		pump(ctx, conn.Conn().WaitForNotification, table, load, ch)
	}()
	return ch, nil
}

// waitFunc blocks until the next notification arrives on the listening connection.
type waitFunc func(ctx context.Context) (*pgconn.Notification, error)

// pump reloads and offers a snapshot for every notification naming table. It returns when
// wait fails; the caller closes ch so subscribers see the feed end.
func pump[T any](ctx context.Context, wait waitFunc, table string, load func(context.Context) ([]T, error), ch chan []T) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("table", table))
	for {
		n, err := wait(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				logger.Error("Ledger change feed stopped", slog.String("error", err.Error()))
			}
			return
		}
		if n.Payload != table {
			continue
		}
		snapshot, err := load(ctx)
		if err != nil {
			logger.Warn("Failed to reload ledger snapshot", slog.String("error", err.Error()))
			continue
		}
		offer(ch, snapshot)
	}
}

// offer replaces any undelivered snapshot with v. The listener goroutine is the only
// sender, so after the drain the send cannot block.
func offer[T any](ch chan []T, v []T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
