package repositories

import (
	"context"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
)

// PersonReader defines read operations for the person directory.
type PersonReader interface {
	// FindPersonByID retrieves a person with the current balance.
	FindPersonByID(ctx context.Context, personID string) (*domain.Person, error)

	// FindPersons retrieves a page of persons ordered by name. An empty personType matches all.
	FindPersons(ctx context.Context, personType domain.PersonType, limit int, offset int) ([]domain.Person, error)
}

// PersonWriter defines write operations for the person directory.
// Balances are owned by the ledger and are never written through this interface.
type PersonWriter interface {
	// SavePerson persists a new person. An existing id fails with apperrors.ErrDuplicate.
	SavePerson(ctx context.Context, person domain.Person) error

	// UpdatePerson updates name, type and phone.
	UpdatePerson(ctx context.Context, person domain.Person) error
}

// PersonRepositoryFacade combines all person-related repository interfaces
type PersonRepositoryFacade interface {
	PersonReader
	PersonWriter
}
