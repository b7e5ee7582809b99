package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/dealership_ledger/internal/models"
	"github.com/SscSPs/dealership_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPersonRepository is the Postgres person directory.
type PgxPersonRepository struct {
	BaseRepository
}

func newPgxPersonRepository(db *pgxpool.Pool) portsrepo.PersonRepositoryFacade {
	return &PgxPersonRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxPersonRepository implements portsrepo.PersonRepositoryFacade
var _ portsrepo.PersonRepositoryFacade = (*PgxPersonRepository)(nil)

func (r *PgxPersonRepository) SavePerson(ctx context.Context, person domain.Person) error {
	m := mapping.ToModelPerson(person)
	query := `
        INSERT INTO persons (` + personColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.PersonID,
		m.Name,
		m.PersonType,
		m.Phone,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return persistErr("failed to save person", err)
	}
	return nil
}

func (r *PgxPersonRepository) UpdatePerson(ctx context.Context, person domain.Person) error {
	m := mapping.ToModelPerson(person)
	query := `
        UPDATE persons
        SET name = $2, person_type = $3, phone = $4, last_updated_at = $5, last_updated_by = $6
        WHERE person_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query, m.PersonID, m.Name, m.PersonType, m.Phone, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return persistErr("failed to update person", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: person %s", apperrors.ErrNotFound, person.PersonID)
	}
	return nil
}

func (r *PgxPersonRepository) FindPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	return getPerson(ctx, r.Pool, personID, false)
}

func (r *PgxPersonRepository) FindPersons(ctx context.Context, personType domain.PersonType, limit int, offset int) ([]domain.Person, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + personColumns + `
        FROM persons
        WHERE ($1::text = '' OR person_type = $1::text)
        ORDER BY lower(name), person_id
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, string(personType), limit, offset)
	if err != nil {
		return nil, persistErr("failed to query persons", err)
	}
	modelPersons, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Person, error) {
		return scanPerson(row)
	})
	if err != nil {
		return nil, persistErr("failed to scan persons", err)
	}

	persons := make([]domain.Person, len(modelPersons))
	for i, m := range modelPersons {
		persons[i] = mapping.ToDomainPerson(m)
	}
	return persons, nil
}
