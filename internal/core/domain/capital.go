package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalType names one of the dealership-wide running balances.
type CapitalType string

const (
	CapitalCash   CapitalType = "Cash"
	CapitalBank   CapitalType = "Bank"
	CapitalCredit CapitalType = "Credit"
)

// CapitalTypes lists every balance type in display order.
var CapitalTypes = []CapitalType{CapitalCash, CapitalBank, CapitalCredit}

// IsValid reports whether c is a known balance type.
func (c CapitalType) IsValid() bool {
	return c == CapitalCash || c == CapitalBank || c == CapitalCredit
}

// AdjustmentReason explains why a capital balance moved.
type AdjustmentReason string

const (
	AdjustmentInitial     AdjustmentReason = "INITIAL"
	AdjustmentManual      AdjustmentReason = "MANUAL"
	AdjustmentTransaction AdjustmentReason = "TRANSACTION"
	AdjustmentReversal    AdjustmentReason = "REVERSAL"
)

// CapitalBalance is the current value of one running balance.
type CapitalBalance struct {
	Type          CapitalType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// CapitalAdjustment is one entry of the append-only log every balance is replayable from.
type CapitalAdjustment struct {
	AdjustmentID   string           `json:"adjustmentID"`
	Type           CapitalType      `json:"type"`
	Delta          decimal.Decimal  `json:"delta"`
	Reason         AdjustmentReason `json:"reason"`
	TransactionRef string           `json:"transactionRef,omitempty"`
	Note           string           `json:"note,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
}

// CapitalSnapshot is the balances and the adjustment log read from one consistent view.
type CapitalSnapshot struct {
	Balances    map[CapitalType]CapitalBalance
	Adjustments []CapitalAdjustment
}

// CapitalDiscrepancy is reported when a stored balance differs from its replayed value.
type CapitalDiscrepancy struct {
	Type     CapitalType     `json:"type"`
	Stored   decimal.Decimal `json:"stored"`
	Replayed decimal.Decimal `json:"replayed"`
}
