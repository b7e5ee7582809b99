package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

type personKey struct {
	name       string
	personType domain.PersonType
}

// groupByPerson sums value(txn) per (personName, personType) over the transactions accepted
// by include, drops zero totals when dropZero is set, and sorts by total descending.
func groupByPerson(txns []domain.PersonTransaction, include func(domain.PersonTransaction) bool, value func(domain.PersonTransaction) decimal.Decimal, dropZero bool) []domain.PersonTotal {
	totals := make(map[personKey]*domain.PersonTotal)
	for _, txn := range txns {
		if txn.Status != domain.StatusCompleted || !include(txn) {
			continue
		}
		key := personKey{name: txn.PersonName, personType: txn.PersonType}
		row, ok := totals[key]
		if !ok {
			row = &domain.PersonTotal{PersonName: txn.PersonName, PersonType: txn.PersonType, Total: decimal.Zero}
			totals[key] = row
		}
		row.Total = row.Total.Add(value(txn))
		row.TransactionCount++
	}

	out := make([]domain.PersonTotal, 0, len(totals))
	for _, row := range totals {
		if dropZero && row.Total.IsZero() {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		if out[i].PersonName != out[j].PersonName {
			return out[i].PersonName < out[j].PersonName
		}
		return out[i].PersonType < out[j].PersonType
	})
	return out
}

func amountOf(txn domain.PersonTransaction) decimal.Decimal { return txn.Amount }

// MoneyReceived groups SALE and EMI_PAYMENT amounts by person, largest first.
func MoneyReceived(txns []domain.PersonTransaction) []domain.PersonTotal {
	return groupByPerson(txns, func(t domain.PersonTransaction) bool {
		return t.Type == domain.TransactionSale || t.Type == domain.TransactionEmiPayment
	}, amountOf, false)
}

// MoneyPaid groups PURCHASE and BROKER_FEE amounts by person, largest first.
func MoneyPaid(txns []domain.PersonTransaction) []domain.PersonTotal {
	return groupByPerson(txns, func(t domain.PersonTransaction) bool {
		return t.Type == domain.TransactionPurchase || t.Type == domain.TransactionBrokerFee
	}, amountOf, false)
}

// CreditOwed groups the credit part of purchases bought on credit by person, dropping zero totals.
func CreditOwed(txns []domain.PersonTransaction) []domain.PersonTotal {
	return groupByPerson(txns, func(t domain.PersonTransaction) bool {
		if t.Type != domain.TransactionPurchase {
			return false
		}
		return t.CreditAmount.IsPositive() || t.PaymentMethod == domain.PaymentCredit || t.PaymentMethod == domain.PaymentMixed
	}, func(t domain.PersonTransaction) decimal.Decimal { return t.CreditAmount }, true)
}

// EmiOutstanding lists active EMI sales with remaining * installment, earliest due first.
func EmiOutstanding(sales []domain.VehicleSale) []domain.EmiOutstandingRow {
	out := make([]domain.EmiOutstandingRow, 0)
	for _, sale := range sales {
		if sale.Status != domain.SaleActive || !sale.IsEmi() {
			continue
		}
		out = append(out, domain.EmiOutstandingRow{
			SaleID:                sale.SaleID,
			CustomerID:            sale.CustomerID,
			VehicleID:             sale.VehicleID,
			InstallmentAmount:     sale.Emi.InstallmentAmount,
			RemainingInstallments: sale.Emi.RemainingInstallments,
			Outstanding:           sale.Emi.Outstanding(),
			NextDueDate:           sale.Emi.NextDueDate,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextDueDate.Equal(out[j].NextDueDate) {
			return out[i].NextDueDate.Before(out[j].NextDueDate)
		}
		return out[i].SaleID < out[j].SaleID
	})
	return out
}

// BuildLedgerViews computes every view from the given transactions and sales.
func BuildLedgerViews(txns []domain.PersonTransaction, sales []domain.VehicleSale, now time.Time) domain.LedgerViews {
	return domain.LedgerViews{
		MoneyReceived:  MoneyReceived(txns),
		MoneyPaid:      MoneyPaid(txns),
		EmiOutstanding: EmiOutstanding(sales),
		CreditOwed:     CreditOwed(txns),
		ComputedAt:     now,
	}
}
