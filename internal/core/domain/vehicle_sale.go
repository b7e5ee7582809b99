package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseType is how the customer pays for a vehicle.
type PurchaseType string

const (
	PurchaseFullPayment PurchaseType = "FULL_PAYMENT"
	PurchaseEmi         PurchaseType = "EMI"
)

// SaleStatus is the lifecycle state of a VehicleSale.
type SaleStatus string

const (
	SaleActive    SaleStatus = "Active"
	SaleCompleted SaleStatus = "Completed"
)

// EmiFrequency is the installment period of an EMI plan.
type EmiFrequency string

const (
	FrequencyMonthly      EmiFrequency = "MONTHLY"
	FrequencyQuarterly    EmiFrequency = "QUARTERLY"
	FrequencySemiAnnually EmiFrequency = "SEMI_ANNUALLY"
	FrequencyYearly       EmiFrequency = "YEARLY"
)

// Months returns the number of calendar months in one period, or 0 for an unknown frequency.
func (f EmiFrequency) Months() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencySemiAnnually:
		return 6
	case FrequencyYearly:
		return 12
	}
	return 0
}

// EmiDetails holds the installment plan of an EMI sale.
// Invariant: PaidInstallments + RemainingInstallments == InstallmentsCount.
type EmiDetails struct {
	InterestRate          decimal.Decimal `json:"interestRate"` // percent, >= 0
	Frequency             EmiFrequency    `json:"frequency"`
	DurationMonths        int             `json:"durationMonths"`
	InstallmentsCount     int             `json:"installmentsCount"`
	InstallmentAmount     decimal.Decimal `json:"installmentAmount"`
	NextDueDate           time.Time       `json:"nextDueDate"`
	RemainingInstallments int             `json:"remainingInstallments"`
	PaidInstallments      int             `json:"paidInstallments"`
}

// TotalPayable is the sum of all installments of the plan.
func (e EmiDetails) TotalPayable() decimal.Decimal {
	return e.InstallmentAmount.Mul(decimal.NewFromInt(int64(e.InstallmentsCount)))
}

// Outstanding is the amount still to be collected.
func (e EmiDetails) Outstanding() decimal.Decimal {
	return e.InstallmentAmount.Mul(decimal.NewFromInt(int64(e.RemainingInstallments)))
}

// CountersConsistent checks the paid/remaining invariant.
func (e EmiDetails) CountersConsistent() bool {
	return e.PaidInstallments >= 0 && e.RemainingInstallments >= 0 &&
		e.PaidInstallments+e.RemainingInstallments == e.InstallmentsCount
}

// EmiState is the explicit progress state of a sale's EMI plan.
type EmiState string

const (
	EmiNotApplicable             EmiState = "NOT_APPLICABLE"
	EmiInProgress                EmiState = "EMI_IN_PROGRESS"
	EmiCompletePendingTransition EmiState = "EMI_COMPLETE_PENDING_TRANSITION"
	EmiCompleted                 EmiState = "COMPLETED"
)

// VehicleSale records the sale of a vehicle to a customer.
type VehicleSale struct {
	SaleID          string          `json:"saleID"`
	CustomerID      string          `json:"customerID"`
	VehicleID       string          `json:"vehicleID"`
	PurchaseType    PurchaseType    `json:"purchaseType"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	DownPayment     decimal.Decimal `json:"downPayment"`
	DownPaymentCash decimal.Decimal `json:"downPaymentCash"`
	DownPaymentBank decimal.Decimal `json:"downPaymentBank"`
	Status          SaleStatus      `json:"status"`
	Emi             *EmiDetails     `json:"emiDetails,omitempty"`
	SaleDate        time.Time       `json:"saleDate"`
	AuditFields
}

// IsEmi reports whether the sale is financed through installments.
func (s VehicleSale) IsEmi() bool {
	return s.PurchaseType == PurchaseEmi && s.Emi != nil
}

// EmiState derives the plan state. The pending-transition state only exists between the
// final payment being applied and the status flip, both inside one atomic write.
func (s VehicleSale) EmiState() EmiState {
	if !s.IsEmi() {
		return EmiNotApplicable
	}
	if s.Status == SaleCompleted {
		return EmiCompleted
	}
	if s.Emi.RemainingInstallments == 0 {
		return EmiCompletePendingTransition
	}
	return EmiInProgress
}

// Snapshot captures the EMI progress for later restoration.
func (s VehicleSale) Snapshot() *EmiProgressSnapshot {
	if s.Emi == nil {
		return nil
	}
	return &EmiProgressSnapshot{
		PaidInstallments:      s.Emi.PaidInstallments,
		RemainingInstallments: s.Emi.RemainingInstallments,
		NextDueDate:           s.Emi.NextDueDate,
		SaleStatus:            s.Status,
	}
}

// Clone returns a deep copy of the sale.
func (s VehicleSale) Clone() VehicleSale {
	if s.Emi != nil {
		emi := *s.Emi
		s.Emi = &emi
	}
	return s
}
