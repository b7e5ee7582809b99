package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies which domain operation produced a PersonTransaction.
type TransactionType string

const (
	TransactionPurchase   TransactionType = "PURCHASE"
	TransactionSale       TransactionType = "SALE"
	TransactionEmiPayment TransactionType = "EMI_PAYMENT"
	TransactionBrokerFee  TransactionType = "BROKER_FEE"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionPurchase, TransactionSale, TransactionEmiPayment, TransactionBrokerFee:
		return true
	}
	return false
}

// IsInflow reports whether money flows towards the dealership for this type.
func (t TransactionType) IsInflow() bool {
	return t == TransactionSale || t == TransactionEmiPayment
}

// PaymentMethod describes how a transaction amount was settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentBank   PaymentMethod = "BANK"
	PaymentCredit PaymentMethod = "CREDIT"
	PaymentMixed  PaymentMethod = "MIXED"
)

// TransactionStatus is the lifecycle state of a PersonTransaction.
// CANCELLED marks a reversed (logically deleted) transaction.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusPending   TransactionStatus = "PENDING"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// BalanceEffects are the signed deltas a transaction applied when it was recorded.
// Reversal applies their negation.
type BalanceEffects struct {
	Cash   decimal.Decimal `json:"cash"`
	Bank   decimal.Decimal `json:"bank"`
	Credit decimal.Decimal `json:"credit"`
	Person decimal.Decimal `json:"person"`
}

// Negate returns the inverse effects.
func (e BalanceEffects) Negate() BalanceEffects {
	return BalanceEffects{
		Cash:   e.Cash.Neg(),
		Bank:   e.Bank.Neg(),
		Credit: e.Credit.Neg(),
		Person: e.Person.Neg(),
	}
}

// Capital returns the non-zero capital deltas keyed by balance type.
func (e BalanceEffects) Capital() map[CapitalType]decimal.Decimal {
	out := make(map[CapitalType]decimal.Decimal, 3)
	if !e.Cash.IsZero() {
		out[CapitalCash] = e.Cash
	}
	if !e.Bank.IsZero() {
		out[CapitalBank] = e.Bank
	}
	if !e.Credit.IsZero() {
		out[CapitalCredit] = e.Credit
	}
	return out
}

// EmiProgressSnapshot captures the state of a sale's EMI plan before a payment was applied.
type EmiProgressSnapshot struct {
	PaidInstallments      int        `json:"paidInstallments"`
	RemainingInstallments int        `json:"remainingInstallments"`
	NextDueDate           time.Time  `json:"nextDueDate"`
	SaleStatus            SaleStatus `json:"saleStatus"`
}

// PersonTransaction is a ledger entry attributing a money movement to a customer, broker or middle man.
type PersonTransaction struct {
	TransactionID     string               `json:"transactionID"`
	Type              TransactionType      `json:"type"`
	PersonID          string               `json:"personID"`
	PersonName        string               `json:"personName"`
	PersonType        PersonType           `json:"personType"`
	Amount            decimal.Decimal      `json:"amount"`
	CashAmount        decimal.Decimal      `json:"cashAmount"`
	BankAmount        decimal.Decimal      `json:"bankAmount"`
	CreditAmount      decimal.Decimal      `json:"creditAmount"`
	PaymentMethod     PaymentMethod        `json:"paymentMethod"`
	TransactionDate   time.Time            `json:"transactionDate"`
	OrderNumber       string               `json:"orderNumber,omitempty"`
	TransactionNumber string               `json:"transactionNumber,omitempty"`
	RelatedRef        string               `json:"relatedRef,omitempty"` // PurchaseID or SaleID
	Status            TransactionStatus    `json:"status"`
	Description       string               `json:"description"`
	Note              string               `json:"note"`
	Effects           BalanceEffects       `json:"effects"`
	EmiProgress       *EmiProgressSnapshot `json:"emiProgress,omitempty"`
	ReversedAt        *time.Time           `json:"reversedAt,omitempty"`
	ReversedBy        string               `json:"reversedBy,omitempty"`
	AuditFields
}

// IsReversed reports whether the transaction has already been reversed.
func (t PersonTransaction) IsReversed() bool {
	return t.Status == StatusCancelled
}

// ReversalResult reports the outcome of a reversal. Partial is set when related records
// were missing or already modified; balances are restored regardless.
type ReversalResult struct {
	TransactionID string          `json:"transactionID"`
	Type          TransactionType `json:"type"`
	Partial       bool            `json:"partial"`
	Warnings      []string        `json:"warnings,omitempty"`
	ReversedAt    time.Time       `json:"reversedAt"`
}

// AddWarning marks the reversal as partial with the given reason.
func (r *ReversalResult) AddWarning(msg string) {
	r.Partial = true
	r.Warnings = append(r.Warnings, msg)
}
