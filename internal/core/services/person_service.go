package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// personService manages the directory of customers, brokers and middle men.
type personService struct {
	BaseService
	personRepo portsrepo.PersonRepositoryFacade
}

// PersonServiceOption is a function that configures a personService
type PersonServiceOption func(*personService)

// WithPersonClock overrides the time source.
func WithPersonClock(now func() time.Time) PersonServiceOption {
	return func(s *personService) {
		s.Now = now
	}
}

// WithPersonIDs overrides id generation.
func WithPersonIDs(newID func() string) PersonServiceOption {
	return func(s *personService) {
		s.NewID = newID
	}
}

// NewPersonService creates a new PersonSvcFacade.
func NewPersonService(personRepo portsrepo.PersonRepositoryFacade, options ...PersonServiceOption) portssvc.PersonSvcFacade {
	s := &personService{
		BaseService: newBaseService(),
		personRepo:  personRepo,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.PersonSvcFacade = (*personService)(nil)

func (s *personService) CreatePerson(ctx context.Context, req dto.CreatePersonRequest, creatorUserID string) (*domain.Person, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown person type %q", apperrors.ErrValidation, req.Type)
	}

	person := domain.Person{
		PersonID:    s.NewID(),
		Name:        name,
		Type:        req.Type,
		Phone:       strings.TrimSpace(req.Phone),
		Balance:     decimal.Zero,
		AuditFields: domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := s.personRepo.SavePerson(ctx, person); err != nil {
		s.LogError(ctx, err, "Failed to save person", slog.String("person_id", person.PersonID))
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	s.LogInfo(ctx, "Person created", slog.String("person_id", person.PersonID), slog.String("person_type", string(person.Type)))
	return &person, nil
}

func (s *personService) GetPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	person, err := s.personRepo.FindPersonByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to get person %s: %w", personID, err)
	}
	return person, nil
}

func (s *personService) ListPersons(ctx context.Context, params dto.ListPersonsParams) ([]domain.Person, error) {
	if params.Type != "" && !params.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown person type %q", apperrors.ErrValidation, params.Type)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	persons, err := s.personRepo.FindPersons(ctx, params.Type, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list persons")
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	return persons, nil
}

func (s *personService) UpdatePerson(ctx context.Context, personID string, req dto.UpdatePersonRequest, requestingUserID string) (*domain.Person, error) {
	person, err := s.personRepo.FindPersonByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to get person %s: %w", personID, err)
	}

	changed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
		}
		if name != person.Name {
			person.Name = name
			changed = true
		}
	}
	if req.Type != nil && *req.Type != person.Type {
		if !req.Type.IsValid() {
			return nil, fmt.Errorf("%w: unknown person type %q", apperrors.ErrValidation, *req.Type)
		}
		person.Type = *req.Type
		changed = true
	}
	if req.Phone != nil && strings.TrimSpace(*req.Phone) != person.Phone {
		person.Phone = strings.TrimSpace(*req.Phone)
		changed = true
	}
	if !changed {
		return person, nil
	}

	person.Touch(requestingUserID, s.Now())
	if err := s.personRepo.UpdatePerson(ctx, *person); err != nil {
		s.LogError(ctx, err, "Failed to update person", slog.String("person_id", personID))
		return nil, fmt.Errorf("failed to update person %s: %w", personID, err)
	}
	return person, nil
}
