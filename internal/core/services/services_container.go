package services

import (
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Capital = NewCapitalService(repos.LedgerRepo)
	container.Recorder = NewRecorderService(repos.LedgerRepo)

	var reversalOpts []ReversalServiceOption
	if repos.ReversalGuard != nil {
		reversalOpts = append(reversalOpts, WithReversalGuard(repos.ReversalGuard))
	}
	container.Reversal = NewReversalService(repos.LedgerRepo, reversalOpts...)

	container.Reporting = NewReportingService(repos.LedgerRepo)
	container.Person = NewPersonService(repos.PersonRepo)

	return container
}
