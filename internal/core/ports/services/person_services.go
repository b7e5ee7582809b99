package services

import (
	"context"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/SscSPs/dealership_ledger/internal/dto"
)

// PersonReaderSvc defines read operations for the person directory
type PersonReaderSvc interface {
	// GetPersonByID retrieves a person with the current ledger balance.
	GetPersonByID(ctx context.Context, personID string) (*domain.Person, error)

	// ListPersons retrieves a page of persons ordered by name.
	ListPersons(ctx context.Context, params dto.ListPersonsParams) ([]domain.Person, error)
}

// PersonWriterSvc defines write operations for the person directory
type PersonWriterSvc interface {
	// CreatePerson registers a customer, broker or middle man with a zero balance.
	CreatePerson(ctx context.Context, req dto.CreatePersonRequest, creatorUserID string) (*domain.Person, error)

	// UpdatePerson changes the descriptive fields of a person. The balance is not writable.
	UpdatePerson(ctx context.Context, personID string, req dto.UpdatePersonRequest, requestingUserID string) (*domain.Person, error)
}

// PersonSvcFacade combines all person-related service interfaces
type PersonSvcFacade interface {
	PersonReaderSvc
	PersonWriterSvc
}
