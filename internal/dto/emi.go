package dto

import (
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EmiPreviewRequest asks for an installment quote without recording anything.
type EmiPreviewRequest struct {
	TotalAmount    decimal.Decimal     `json:"totalAmount" binding:"dgt0" swaggertype:"string" example:"100000"`
	DownPayment    decimal.Decimal     `json:"downPayment" binding:"dgte0" swaggertype:"string" example:"10000"`
	InterestRate   decimal.Decimal     `json:"interestRate" swaggertype:"string" example:"12"`
	Frequency      domain.EmiFrequency `json:"frequency" binding:"required,oneof=MONTHLY QUARTERLY SEMI_ANNUALLY YEARLY"`
	DurationMonths int                 `json:"durationMonths" binding:"required,gt=0"`
	StartDate      *time.Time          `json:"startDate"`
}

// EmiPreviewResponse is the computed plan.
type EmiPreviewResponse struct {
	Principal         decimal.Decimal `json:"principal" swaggertype:"string"`
	Computable        bool            `json:"computable"`
	Periods           int             `json:"periods"`
	TotalInterest     decimal.Decimal `json:"totalInterest" swaggertype:"string"`
	TotalAmount       decimal.Decimal `json:"totalAmount" swaggertype:"string"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount" swaggertype:"string"`
	FirstDueDate      *time.Time      `json:"firstDueDate,omitempty"`
}
