package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
)

var _ portsrepo.PersonRepositoryFacade = (*Store)(nil)

// FindPersons returns persons ordered by name, then id.
func (s *Store) FindPersons(ctx context.Context, personType domain.PersonType, limit int, offset int) ([]domain.Person, error) {
	st := s.snapshot()
	out := make([]domain.Person, 0, len(st.persons))
	for _, p := range st.persons {
		if personType != "" && p.Type != personType {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].PersonID < out[j].PersonID
	})
	if offset >= len(out) {
		return []domain.Person{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) SavePerson(ctx context.Context, person domain.Person) error {
	return s.mutate(ctx, func(st *state) error {
		if _, exists := st.persons[person.PersonID]; exists {
			return fmt.Errorf("%w: person %s", apperrors.ErrDuplicate, person.PersonID)
		}
		st.persons[person.PersonID] = person
		return nil
	})
}

func (s *Store) UpdatePerson(ctx context.Context, person domain.Person) error {
	return s.mutate(ctx, func(st *state) error {
		current, ok := st.persons[person.PersonID]
		if !ok {
			return notFound("person", person.PersonID)
		}
		current.Name = person.Name
		current.Type = person.Type
		current.Phone = person.Phone
		current.LastUpdatedAt = person.LastUpdatedAt
		current.LastUpdatedBy = person.LastUpdatedBy
		st.persons[person.PersonID] = current
		return nil
	})
}

// mutate applies a directory change outside the ledger feed. Subscribers are not notified.
func (s *Store) mutate(ctx context.Context, fn func(st *state) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	working := s.snapshot().clone()
	if err := fn(working); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = working
	s.mu.Unlock()
	return nil
}
