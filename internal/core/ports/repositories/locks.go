package repositories

import "context"

// ReversalGuard prevents two callers from reversing the same transaction at the same time.
// Acquire fails with apperrors.ErrConflict while another holder owns the key.
type ReversalGuard interface {
	Acquire(ctx context.Context, transactionID string) (release func(), err error)
}
