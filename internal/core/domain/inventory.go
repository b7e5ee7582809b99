package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a vehicle held in inventory. ChassisNumber is unique across products.
type Product struct {
	ProductID     string          `json:"productID"`
	ChassisNumber string          `json:"chassisNumber"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Year          int             `json:"year"`
	Price         decimal.Decimal `json:"price"`
	Sold          bool            `json:"sold"`
	PurchaseRef   string          `json:"purchaseRef,omitempty"`
	AuditFields
}

// Purchase records the dealership buying a vehicle from a person.
type Purchase struct {
	PurchaseID   string          `json:"purchaseID"`
	PersonID     string          `json:"personID"`
	ProductID    string          `json:"productID"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CashAmount   decimal.Decimal `json:"cashAmount"`
	BankAmount   decimal.Decimal `json:"bankAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Attachments  []string        `json:"attachments,omitempty"` // durable file references, uploaded beforehand
	PurchaseDate time.Time       `json:"purchaseDate"`
	AuditFields
}

// Clone returns a deep copy of the purchase.
func (p Purchase) Clone() Purchase {
	if p.Attachments != nil {
		p.Attachments = append([]string(nil), p.Attachments...)
	}
	return p
}
