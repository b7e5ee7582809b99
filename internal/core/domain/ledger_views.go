package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersonTotal is one row of a grouped money view.
type PersonTotal struct {
	PersonName       string          `json:"personName"`
	PersonType       PersonType      `json:"personType"`
	Total            decimal.Decimal `json:"total"`
	TransactionCount int             `json:"transactionCount"`
}

// EmiOutstandingRow is one active EMI sale with the amount still to collect.
type EmiOutstandingRow struct {
	SaleID                string          `json:"saleID"`
	CustomerID            string          `json:"customerID"`
	VehicleID             string          `json:"vehicleID"`
	InstallmentAmount     decimal.Decimal `json:"installmentAmount"`
	RemainingInstallments int             `json:"remainingInstallments"`
	Outstanding           decimal.Decimal `json:"outstanding"`
	NextDueDate           time.Time       `json:"nextDueDate"`
}

// LedgerViews bundles the read models derived from the transaction and sale streams.
type LedgerViews struct {
	MoneyReceived  []PersonTotal       `json:"moneyReceived"`
	MoneyPaid      []PersonTotal       `json:"moneyPaid"`
	EmiOutstanding []EmiOutstandingRow `json:"emiOutstanding"`
	CreditOwed     []PersonTotal       `json:"creditOwed"`
	ComputedAt     time.Time           `json:"computedAt"`
}
