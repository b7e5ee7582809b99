package pgsql

import (
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres ledger store and person directory. The reversal
// guard is optional and supplied by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, guard portsrepo.ReversalGuard) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		PersonRepo:    newPgxPersonRepository(dbPool),
		ReversalGuard: guard,
	}
}
