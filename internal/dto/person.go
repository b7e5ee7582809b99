package dto

import (
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePersonRequest registers a counterparty.
type CreatePersonRequest struct {
	Name  string            `json:"name" binding:"required,max=200"`
	Type  domain.PersonType `json:"type" binding:"required,oneof=CUSTOMER BROKER MIDDLE_MAN"`
	Phone string            `json:"phone" binding:"omitempty,max=32"`
}

// UpdatePersonRequest defines the fields allowed for updating a person.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdatePersonRequest struct {
	Name  *string            `json:"name" binding:"omitempty,min=1,max=200"`
	Type  *domain.PersonType `json:"type" binding:"omitempty,oneof=CUSTOMER BROKER MIDDLE_MAN"`
	Phone *string            `json:"phone" binding:"omitempty,max=32"`
}

// ListPersonsParams defines query parameters for listing persons.
type ListPersonsParams struct {
	Type   domain.PersonType `form:"type" binding:"omitempty,oneof=CUSTOMER BROKER MIDDLE_MAN"`
	Limit  int               `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int               `form:"offset,default=0" binding:"min=0"`
}

// PersonResponse is the API view of a person.
type PersonResponse struct {
	PersonID      string            `json:"personID"`
	Name          string            `json:"name"`
	Type          domain.PersonType `json:"type"`
	Phone         string            `json:"phone,omitempty"`
	Balance       decimal.Decimal   `json:"balance" swaggertype:"string"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// ToPersonResponse converts a domain.Person to PersonResponse DTO.
func ToPersonResponse(p *domain.Person) PersonResponse {
	return PersonResponse{
		PersonID:      p.PersonID,
		Name:          p.Name,
		Type:          p.Type,
		Phone:         p.Phone,
		Balance:       p.Balance,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ListPersonsResponse wraps one page of persons.
type ListPersonsResponse struct {
	Persons []PersonResponse `json:"persons"`
}

// ToListPersonsResponse converts a slice of domain.Person to ListPersonsResponse DTO.
func ToListPersonsResponse(persons []domain.Person) ListPersonsResponse {
	out := make([]PersonResponse, len(persons))
	for i := range persons {
		out[i] = ToPersonResponse(&persons[i])
	}
	return ListPersonsResponse{Persons: out}
}
