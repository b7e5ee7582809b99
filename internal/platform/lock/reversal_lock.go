package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/dealership_ledger/internal/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 30 * time.Second
	keyPrefix  = "ledger:reversal:"
)

// releaseScript deletes the key only while it still holds our token, so an expired lock
// re-acquired by another instance is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReversalGuard marks a transaction as being reversed across instances with SET NX.
// Each instance also keeps an in-process set, which still protects it when Redis is down.
type ReversalGuard struct {
	client *redis.Client
	ttl    time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Option configures a ReversalGuard.
type Option func(*ReversalGuard)

// WithTTL bounds how long a crashed holder can block a transaction.
func WithTTL(ttl time.Duration) Option {
	return func(g *ReversalGuard) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

// NewReversalGuard creates a guard. A nil client gives an in-process guard only.
func NewReversalGuard(client *redis.Client, opts ...Option) *ReversalGuard {
	g := &ReversalGuard{
		client:   client,
		ttl:      DefaultTTL,
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ portsrepo.ReversalGuard = (*ReversalGuard)(nil)

// Acquire claims transactionID or fails with apperrors.ErrConflict.
func (g *ReversalGuard) Acquire(ctx context.Context, transactionID string) (func(), error) {
	g.mu.Lock()
	if _, busy := g.inFlight[transactionID]; busy {
		g.mu.Unlock()
		return nil, fmt.Errorf("%w: reversal of %s already in progress", apperrors.ErrConflict, transactionID)
	}
	g.inFlight[transactionID] = struct{}{}
	g.mu.Unlock()

	releaseLocal := func() {
		g.mu.Lock()
		delete(g.inFlight, transactionID)
		g.mu.Unlock()
	}

	if g.client == nil {
		return releaseLocal, nil
	}

	key := keyPrefix + transactionID
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		// The store's status check still guarantees at-most-once reversal.
		middleware.GetLoggerFromCtx(ctx).Warn("Reversal lock unavailable, continuing with local guard",
			slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return releaseLocal, nil
	}
	if !ok {
		releaseLocal()
		return nil, fmt.Errorf("%w: reversal of %s already in progress", apperrors.ErrConflict, transactionID)
	}

	return func() {
		defer releaseLocal()
		// Release must outlive a cancelled request context.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, g.client, []string{key}, token).Err(); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to release reversal lock",
				slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		}
	}, nil
}
