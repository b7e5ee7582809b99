package dto

import (
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentSplitRequest is the cash/bank/credit breakdown of an amount.
type PaymentSplitRequest struct {
	CashAmount   decimal.Decimal `json:"cashAmount" binding:"dgte0" swaggertype:"string" example:"50000"`
	BankAmount   decimal.Decimal `json:"bankAmount" binding:"dgte0" swaggertype:"string" example:"0"`
	CreditAmount decimal.Decimal `json:"creditAmount" binding:"dgte0" swaggertype:"string" example:"0"`
}

// VehicleRequest describes the vehicle bought in a purchase.
type VehicleRequest struct {
	ChassisNumber string          `json:"chassisNumber" binding:"required"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Year          int             `json:"year" binding:"omitempty,gte=1900"`
	Price         decimal.Decimal `json:"price" binding:"dgte0" swaggertype:"string"`
}

// RecordPurchaseRequest records the dealership buying a vehicle from a person.
type RecordPurchaseRequest struct {
	PersonID    string          `json:"personID" binding:"required"`
	Vehicle     VehicleRequest  `json:"vehicle"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"dgt0" swaggertype:"string" example:"50000"`
	PaymentSplitRequest
	PurchaseDate      time.Time `json:"purchaseDate" binding:"required"`
	OrderNumber       string    `json:"orderNumber"`
	TransactionNumber string    `json:"transactionNumber"`
	Description       string    `json:"description"`
	Note              string    `json:"note"`
	Attachments       []string  `json:"attachments"` // already uploaded file references
}

// EmiPlanRequest describes the installment plan of an EMI sale.
type EmiPlanRequest struct {
	InterestRate   decimal.Decimal     `json:"interestRate" binding:"dgte0" swaggertype:"string" example:"12"`
	Frequency      domain.EmiFrequency `json:"frequency" binding:"required,oneof=MONTHLY QUARTERLY SEMI_ANNUALLY YEARLY"`
	DurationMonths int                 `json:"durationMonths" binding:"required,gt=0"`
}

// RecordSaleRequest records the sale of an inventory vehicle to a customer.
// For EMI sales the cash and bank amounts are the down payment and credit must be zero.
type RecordSaleRequest struct {
	CustomerID   string              `json:"customerID" binding:"required"`
	VehicleID    string              `json:"vehicleID" binding:"required"`
	PurchaseType domain.PurchaseType `json:"purchaseType" binding:"required,oneof=FULL_PAYMENT EMI"`
	TotalAmount  decimal.Decimal     `json:"totalAmount" binding:"dgt0" swaggertype:"string" example:"90000"`
	PaymentSplitRequest
	Emi               *EmiPlanRequest `json:"emi" binding:"omitempty"`
	SaleDate          time.Time       `json:"saleDate" binding:"required"`
	OrderNumber       string          `json:"orderNumber"`
	TransactionNumber string          `json:"transactionNumber"`
	Description       string          `json:"description"`
	Note              string          `json:"note"`
}

// RecordEmiPaymentRequest records one installment collected on an EMI sale.
type RecordEmiPaymentRequest struct {
	CashAmount        decimal.Decimal `json:"cashAmount" binding:"dgte0" swaggertype:"string" example:"18300"`
	BankAmount        decimal.Decimal `json:"bankAmount" binding:"dgte0" swaggertype:"string" example:"0"`
	PaymentDate       time.Time       `json:"paymentDate" binding:"required"`
	TransactionNumber string          `json:"transactionNumber"`
	Note              string          `json:"note"`
}

// RecordBrokerFeeRequest records a fee paid to a broker or middle man.
type RecordBrokerFeeRequest struct {
	PersonID string          `json:"personID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"dgt0" swaggertype:"string" example:"2000"`
	PaymentSplitRequest
	FeeDate           time.Time `json:"feeDate" binding:"required"`
	RelatedRef        string    `json:"relatedRef"` // purchase or sale the fee belongs to
	TransactionNumber string    `json:"transactionNumber"`
	Description       string    `json:"description"`
	Note              string    `json:"note"`
}

// ListTransactionsParams are the query parameters of the transaction listing.
type ListTransactionsParams struct {
	Types     []domain.TransactionType   `form:"type"`
	Statuses  []domain.TransactionStatus `form:"status"`
	PersonID  string                     `form:"personID"`
	From      *time.Time                 `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To        *time.Time                 `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit     int                        `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string                    `form:"nextToken"`
}

// Filter converts the parameters into a repository filter.
func (p ListTransactionsParams) Filter() domain.TransactionFilter {
	return domain.TransactionFilter{
		Types:    p.Types,
		Statuses: p.Statuses,
		PersonID: p.PersonID,
		From:     p.From,
		To:       p.To,
	}
}

// TransactionResponse is the API view of a PersonTransaction.
type TransactionResponse struct {
	TransactionID     string                   `json:"transactionID"`
	Type              domain.TransactionType   `json:"type"`
	PersonID          string                   `json:"personID"`
	PersonName        string                   `json:"personName"`
	PersonType        domain.PersonType        `json:"personType"`
	Amount            decimal.Decimal          `json:"amount" swaggertype:"string"`
	CashAmount        decimal.Decimal          `json:"cashAmount" swaggertype:"string"`
	BankAmount        decimal.Decimal          `json:"bankAmount" swaggertype:"string"`
	CreditAmount      decimal.Decimal          `json:"creditAmount" swaggertype:"string"`
	PaymentMethod     domain.PaymentMethod     `json:"paymentMethod"`
	TransactionDate   time.Time                `json:"transactionDate"`
	OrderNumber       string                   `json:"orderNumber,omitempty"`
	TransactionNumber string                   `json:"transactionNumber,omitempty"`
	RelatedRef        string                   `json:"relatedRef,omitempty"`
	Status            domain.TransactionStatus `json:"status"`
	Description       string                   `json:"description"`
	Note              string                   `json:"note,omitempty"`
	ReversedAt        *time.Time               `json:"reversedAt,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
	CreatedBy         string                   `json:"createdBy"`
}

// ToTransactionResponse converts a domain.PersonTransaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.PersonTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		Type:              txn.Type,
		PersonID:          txn.PersonID,
		PersonName:        txn.PersonName,
		PersonType:        txn.PersonType,
		Amount:            txn.Amount,
		CashAmount:        txn.CashAmount,
		BankAmount:        txn.BankAmount,
		CreditAmount:      txn.CreditAmount,
		PaymentMethod:     txn.PaymentMethod,
		TransactionDate:   txn.TransactionDate,
		OrderNumber:       txn.OrderNumber,
		TransactionNumber: txn.TransactionNumber,
		RelatedRef:        txn.RelatedRef,
		Status:            txn.Status,
		Description:       txn.Description,
		Note:              txn.Note,
		ReversedAt:        txn.ReversedAt,
		CreatedAt:         txn.CreatedAt,
		CreatedBy:         txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.PersonTransaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.PersonTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// SaleResponse is the API view of a VehicleSale.
type SaleResponse struct {
	SaleID       string              `json:"saleID"`
	CustomerID   string              `json:"customerID"`
	VehicleID    string              `json:"vehicleID"`
	PurchaseType domain.PurchaseType `json:"purchaseType"`
	TotalAmount  decimal.Decimal     `json:"totalAmount" swaggertype:"string"`
	DownPayment  decimal.Decimal     `json:"downPayment" swaggertype:"string"`
	Status       domain.SaleStatus   `json:"status"`
	EmiState     domain.EmiState     `json:"emiState"`
	Emi          *EmiDetailsResponse `json:"emi,omitempty"`
	SaleDate     time.Time           `json:"saleDate"`
}

// EmiDetailsResponse exposes installment progress; nextDueDate is also given in epoch millis.
type EmiDetailsResponse struct {
	InterestRate          decimal.Decimal     `json:"interestRate" swaggertype:"string"`
	Frequency             domain.EmiFrequency `json:"frequency"`
	InstallmentsCount     int                 `json:"installmentsCount"`
	InstallmentAmount     decimal.Decimal     `json:"installmentAmount" swaggertype:"string"`
	NextDueDate           time.Time           `json:"nextDueDate"`
	NextDueDateMillis     int64               `json:"nextDueDateMillis"`
	RemainingInstallments int                 `json:"remainingInstallments"`
	PaidInstallments      int                 `json:"paidInstallments"`
	Outstanding           decimal.Decimal     `json:"outstanding" swaggertype:"string"`
}

// ToSaleResponse converts a domain.VehicleSale to SaleResponse DTO.
func ToSaleResponse(sale *domain.VehicleSale) SaleResponse {
	resp := SaleResponse{
		SaleID:       sale.SaleID,
		CustomerID:   sale.CustomerID,
		VehicleID:    sale.VehicleID,
		PurchaseType: sale.PurchaseType,
		TotalAmount:  sale.TotalAmount,
		DownPayment:  sale.DownPayment,
		Status:       sale.Status,
		EmiState:     sale.EmiState(),
		SaleDate:     sale.SaleDate,
	}
	if sale.Emi != nil {
		resp.Emi = &EmiDetailsResponse{
			InterestRate:          sale.Emi.InterestRate,
			Frequency:             sale.Emi.Frequency,
			InstallmentsCount:     sale.Emi.InstallmentsCount,
			InstallmentAmount:     sale.Emi.InstallmentAmount,
			NextDueDate:           sale.Emi.NextDueDate,
			NextDueDateMillis:     sale.Emi.NextDueDate.UnixMilli(),
			RemainingInstallments: sale.Emi.RemainingInstallments,
			PaidInstallments:      sale.Emi.PaidInstallments,
			Outstanding:           sale.Emi.Outstanding(),
		}
	}
	return resp
}

// RecordSaleResponse returns both the ledger entry and the sale it created.
type RecordSaleResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Sale        SaleResponse        `json:"sale"`
}

// ReversalResponse reports the outcome of a reversal.
type ReversalResponse struct {
	TransactionID string                 `json:"transactionID"`
	Type          domain.TransactionType `json:"type"`
	Partial       bool                   `json:"partial"`
	Warnings      []string               `json:"warnings,omitempty"`
	ReversedAt    time.Time              `json:"reversedAt"`
}

// ToReversalResponse converts a domain.ReversalResult to ReversalResponse DTO.
func ToReversalResponse(r *domain.ReversalResult) ReversalResponse {
	return ReversalResponse{
		TransactionID: r.TransactionID,
		Type:          r.Type,
		Partial:       r.Partial,
		Warnings:      r.Warnings,
		ReversedAt:    r.ReversedAt,
	}
}
