package memory

import (
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires an in-memory ledger store and person directory.
func NewRepositoryProvider(store *Store, guard portsrepo.ReversalGuard) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:    store,
		PersonRepo:    store,
		ReversalGuard: guard,
	}
}
