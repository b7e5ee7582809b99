package domain

import "github.com/shopspring/decimal"

// PersonType classifies the counterparty of a transaction.
type PersonType string

const (
	PersonCustomer  PersonType = "CUSTOMER"
	PersonBroker    PersonType = "BROKER"
	PersonMiddleMan PersonType = "MIDDLE_MAN"
)

// IsValid reports whether t is a known person type.
func (t PersonType) IsValid() bool {
	return t == PersonCustomer || t == PersonBroker || t == PersonMiddleMan
}

// Person is a customer, broker or middle man. Balance is positive when the dealership
// owes the person and negative when the person owes the dealership.
type Person struct {
	PersonID string          `json:"personID"`
	Name     string          `json:"name"`
	Type     PersonType      `json:"type"`
	Phone    string          `json:"phone,omitempty"`
	Balance  decimal.Decimal `json:"balance"`
	AuditFields
}
