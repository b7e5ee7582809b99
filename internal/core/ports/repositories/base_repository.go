package repositories

import "context"

// AtomicRunner executes a unit of work against the store as one all-or-nothing commit.
// If fn returns an error nothing it wrote becomes visible to readers.
type AtomicRunner interface {
	RunAtomic(ctx context.Context, fn func(tx LedgerTx) error) error
}
