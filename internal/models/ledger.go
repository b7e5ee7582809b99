package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersonTransaction is a row of person_transactions.
type PersonTransaction struct {
	TransactionID     string          `db:"transaction_id"`
	TransactionType   string          `db:"transaction_type"`
	PersonID          string          `db:"person_id"`
	PersonName        string          `db:"person_name"`
	PersonType        string          `db:"person_type"`
	Amount            decimal.Decimal `db:"amount"`
	CashAmount        decimal.Decimal `db:"cash_amount"`
	BankAmount        decimal.Decimal `db:"bank_amount"`
	CreditAmount      decimal.Decimal `db:"credit_amount"`
	PaymentMethod     string          `db:"payment_method"`
	TransactionDate   time.Time       `db:"transaction_date"`
	OrderNumber       string          `db:"order_number"`
	TransactionNumber string          `db:"transaction_number"`
	RelatedRef        string          `db:"related_ref"`
	Status            string          `db:"status"`
	Description       string          `db:"description"`
	Note              string          `db:"note"`
	EffectCash        decimal.Decimal `db:"effect_cash"`
	EffectBank        decimal.Decimal `db:"effect_bank"`
	EffectCredit      decimal.Decimal `db:"effect_credit"`
	EffectPerson      decimal.Decimal `db:"effect_person"`
	EmiProgress       []byte          `db:"emi_progress"` // jsonb, NULL unless EMI_PAYMENT
	ReversedAt        *time.Time      `db:"reversed_at"`
	ReversedBy        *string         `db:"reversed_by"`
	AuditFields
}

// VehicleSale is a row of vehicle_sales. The emi_* columns are NULL for full-payment sales.
type VehicleSale struct {
	SaleID                   string              `db:"sale_id"`
	CustomerID               string              `db:"customer_id"`
	VehicleID                string              `db:"vehicle_id"`
	PurchaseType             string              `db:"purchase_type"`
	TotalAmount              decimal.Decimal     `db:"total_amount"`
	DownPayment              decimal.Decimal     `db:"down_payment"`
	DownPaymentCash          decimal.Decimal     `db:"down_payment_cash"`
	DownPaymentBank          decimal.Decimal     `db:"down_payment_bank"`
	Status                   string              `db:"status"`
	SaleDate                 time.Time           `db:"sale_date"`
	EmiInterestRate          decimal.NullDecimal `db:"emi_interest_rate"`
	EmiFrequency             *string             `db:"emi_frequency"`
	EmiDurationMonths        *int32              `db:"emi_duration_months"`
	EmiInstallmentsCount     *int32              `db:"emi_installments_count"`
	EmiInstallmentAmount     decimal.NullDecimal `db:"emi_installment_amount"`
	EmiNextDueDate           *time.Time          `db:"emi_next_due_date"`
	EmiRemainingInstallments *int32              `db:"emi_remaining_installments"`
	EmiPaidInstallments      *int32              `db:"emi_paid_installments"`
	AuditFields
}

// Product is a row of products.
type Product struct {
	ProductID     string          `db:"product_id"`
	ChassisNumber string          `db:"chassis_number"`
	Brand         string          `db:"brand"`
	Model         string          `db:"model"`
	Year          int32           `db:"year"`
	Price         decimal.Decimal `db:"price"`
	Sold          bool            `db:"sold"`
	PurchaseRef   *string         `db:"purchase_ref"`
	AuditFields
}

// Purchase is a row of purchases.
type Purchase struct {
	PurchaseID   string          `db:"purchase_id"`
	PersonID     string          `db:"person_id"`
	ProductID    string          `db:"product_id"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	CashAmount   decimal.Decimal `db:"cash_amount"`
	BankAmount   decimal.Decimal `db:"bank_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	Attachments  []string        `db:"attachments"`
	PurchaseDate time.Time       `db:"purchase_date"`
	AuditFields
}

// Person is a row of persons.
type Person struct {
	PersonID   string          `db:"person_id"`
	Name       string          `db:"name"`
	PersonType string          `db:"person_type"`
	Phone      *string         `db:"phone"`
	Balance    decimal.Decimal `db:"balance"`
	AuditFields
}

// CapitalBalance is a row of capital_balances.
type CapitalBalance struct {
	CapitalType   string          `db:"capital_type"`
	Balance       decimal.Decimal `db:"balance"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}

// CapitalAdjustment is a row of capital_adjustments.
type CapitalAdjustment struct {
	AdjustmentID   string          `db:"adjustment_id"`
	CapitalType    string          `db:"capital_type"`
	Delta          decimal.Decimal `db:"delta"`
	Reason         string          `db:"reason"`
	TransactionRef *string         `db:"transaction_ref"`
	Note           *string         `db:"note"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
