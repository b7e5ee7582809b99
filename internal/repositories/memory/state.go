package memory

import (
	"maps"
	"slices"
	"sort"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/SscSPs/dealership_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// state is one committed version of the store. Committed states are never mutated;
// RunAtomic works on a clone and swaps it in on success.
type state struct {
	transactions map[string]domain.PersonTransaction
	sales        map[string]domain.VehicleSale
	purchases    map[string]domain.Purchase
	products     map[string]domain.Product
	persons      map[string]domain.Person
	capital      map[domain.CapitalType]domain.CapitalBalance
	adjustments  []domain.CapitalAdjustment
}

func newState() *state {
	st := &state{
		transactions: map[string]domain.PersonTransaction{},
		sales:        map[string]domain.VehicleSale{},
		purchases:    map[string]domain.Purchase{},
		products:     map[string]domain.Product{},
		persons:      map[string]domain.Person{},
		capital:      map[domain.CapitalType]domain.CapitalBalance{},
	}
	for _, ct := range domain.CapitalTypes {
		st.capital[ct] = domain.CapitalBalance{Type: ct, Balance: decimal.Zero}
	}
	return st
}

func (s *state) clone() *state {
	out := &state{
		transactions: make(map[string]domain.PersonTransaction, len(s.transactions)),
		sales:        make(map[string]domain.VehicleSale, len(s.sales)),
		purchases:    make(map[string]domain.Purchase, len(s.purchases)),
		products:     maps.Clone(s.products),
		persons:      maps.Clone(s.persons),
		capital:      maps.Clone(s.capital),
		adjustments:  slices.Clone(s.adjustments),
	}
	for id, txn := range s.transactions {
		out.transactions[id] = cloneTransaction(txn)
	}
	for id, sale := range s.sales {
		out.sales[id] = sale.Clone()
	}
	for id, p := range s.purchases {
		out.purchases[id] = p.Clone()
	}
	return out
}

func cloneTransaction(txn domain.PersonTransaction) domain.PersonTransaction {
	if txn.EmiProgress != nil {
		snap := *txn.EmiProgress
		txn.EmiProgress = &snap
	}
	if txn.ReversedAt != nil {
		at := *txn.ReversedAt
		txn.ReversedAt = &at
	}
	return txn
}

func (s *state) listTransactions(filter domain.TransactionFilter) []domain.PersonTransaction {
	out := make([]domain.PersonTransaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		if filter.Matches(txn) {
			out = append(out, cloneTransaction(txn))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return transactionCursor(out[i]).Before(transactionCursor(out[j]))
	})
	return out
}

func transactionCursor(txn domain.PersonTransaction) pagination.Cursor {
	return pagination.Cursor{Date: txn.TransactionDate, CreatedAt: txn.CreatedAt, ID: txn.TransactionID}
}

func (s *state) listSales(filter domain.SaleFilter) []domain.VehicleSale {
	out := make([]domain.VehicleSale, 0, len(s.sales))
	for _, sale := range s.sales {
		if filter.Matches(sale) {
			out = append(out, sale.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].SaleDate.Before(out[j].SaleDate)
		}
		return out[i].SaleID < out[j].SaleID
	})
	return out
}

func (s *state) capitalBalances() map[domain.CapitalType]domain.CapitalBalance {
	out := make(map[domain.CapitalType]domain.CapitalBalance, len(s.capital))
	for k, v := range s.capital {
		out[k] = v
	}
	return out
}
