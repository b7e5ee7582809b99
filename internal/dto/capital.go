package dto

import (
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AdjustCapitalRequest moves one balance by a signed delta.
type AdjustCapitalRequest struct {
	Type  domain.CapitalType `json:"type" binding:"required,oneof=Cash Bank Credit"`
	Delta decimal.Decimal    `json:"delta" binding:"dnonzero" swaggertype:"string" example:"-2500"`
	Note  string             `json:"note"`
}

// SetCapitalRequest sets one balance to an absolute value.
type SetCapitalRequest struct {
	Balance decimal.Decimal `json:"balance" swaggertype:"string" example:"100000"`
	Note    string          `json:"note"`
}

// CapitalBalanceResponse is one running balance.
type CapitalBalanceResponse struct {
	Type          domain.CapitalType `json:"type"`
	Balance       decimal.Decimal    `json:"balance" swaggertype:"string"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToCapitalBalanceResponses converts balances to their DTOs.
func ToCapitalBalanceResponses(balances []domain.CapitalBalance) []CapitalBalanceResponse {
	out := make([]CapitalBalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = CapitalBalanceResponse{Type: b.Type, Balance: b.Balance, LastUpdatedAt: b.LastUpdatedAt}
	}
	return out
}

// CapitalIntegrityResponse lists balances whose stored value disagrees with the adjustment log.
type CapitalIntegrityResponse struct {
	Consistent    bool                        `json:"consistent"`
	Discrepancies []domain.CapitalDiscrepancy `json:"discrepancies"`
}
