package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	LedgerRepo LedgerRepositoryFacade
	PersonRepo PersonRepositoryFacade
	// ReversalGuard is optional; without it only the store's status check prevents double reversal.
	ReversalGuard ReversalGuard
}
