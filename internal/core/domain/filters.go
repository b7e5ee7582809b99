package domain

import (
	"slices"
	"time"
)

// TransactionFilter selects person transactions for queries and subscriptions.
// Zero values match everything.
type TransactionFilter struct {
	Types    []TransactionType
	Statuses []TransactionStatus
	PersonID string
	From     *time.Time
	To       *time.Time
}

// Matches reports whether txn satisfies the filter.
func (f TransactionFilter) Matches(txn PersonTransaction) bool {
	if len(f.Types) > 0 && !slices.Contains(f.Types, txn.Type) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, txn.Status) {
		return false
	}
	if f.PersonID != "" && f.PersonID != txn.PersonID {
		return false
	}
	if f.From != nil && txn.TransactionDate.Before(*f.From) {
		return false
	}
	if f.To != nil && txn.TransactionDate.After(*f.To) {
		return false
	}
	return true
}

// SaleFilter selects vehicle sales.
type SaleFilter struct {
	Status       SaleStatus
	PurchaseType PurchaseType
	CustomerID   string
}

// Matches reports whether sale satisfies the filter.
func (f SaleFilter) Matches(sale VehicleSale) bool {
	if f.Status != "" && f.Status != sale.Status {
		return false
	}
	if f.PurchaseType != "" && f.PurchaseType != sale.PurchaseType {
		return false
	}
	if f.CustomerID != "" && f.CustomerID != sale.CustomerID {
		return false
	}
	return true
}
