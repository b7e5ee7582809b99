package dto

import (
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
)

// LedgerViewsResponse bundles every aggregation view.
type LedgerViewsResponse struct {
	MoneyReceived  []domain.PersonTotal       `json:"moneyReceived"`
	MoneyPaid      []domain.PersonTotal       `json:"moneyPaid"`
	EmiOutstanding []domain.EmiOutstandingRow `json:"emiOutstanding"`
	CreditOwed     []domain.PersonTotal       `json:"creditOwed"`
	ComputedAt     time.Time                  `json:"computedAt"`
}

// ToLedgerViewsResponse converts the domain views to the response DTO.
func ToLedgerViewsResponse(v *domain.LedgerViews) LedgerViewsResponse {
	return LedgerViewsResponse{
		MoneyReceived:  v.MoneyReceived,
		MoneyPaid:      v.MoneyPaid,
		EmiOutstanding: v.EmiOutstanding,
		CreditOwed:     v.CreditOwed,
		ComputedAt:     v.ComputedAt,
	}
}
