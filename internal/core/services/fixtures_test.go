package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/core/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/SscSPs/dealership_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	sellerID   = "person-seller"
	customerID = "person-customer"
	brokerID   = "person-broker"
	userID     = "user-1"
)

var fixedNow = time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedPersons() []domain.Person {
	return []domain.Person{
		{PersonID: sellerID, Name: "Suresh", Type: domain.PersonMiddleMan, Balance: decimal.Zero},
		{PersonID: customerID, Name: "Anita", Type: domain.PersonCustomer, Balance: decimal.Zero},
		{PersonID: brokerID, Name: "Kiran", Type: domain.PersonBroker, Balance: decimal.Zero},
	}
}

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("id-%04d", n.Add(1)) }
}

// ledger bundles a memory store with services wired the way the container does it.
type ledger struct {
	store    *memory.Store
	recorder portssvc.RecorderSvcFacade
	reversal portssvc.ReversalSvc
	capital  portssvc.CapitalSvc
}

func newLedger(t *testing.T, storeOpts ...memory.Option) *ledger {
	t.Helper()
	opts := append([]memory.Option{memory.WithPersons(seedPersons()...)}, storeOpts...)
	store := memory.NewStore(opts...)
	clock := func() time.Time { return fixedNow }
	return &ledger{
		store:    store,
		recorder: services.NewRecorderService(store, services.WithRecorderClock(clock), services.WithRecorderIDGenerator(sequentialIDs())),
		reversal: services.NewReversalService(store, services.WithReversalClock(clock)),
		capital:  services.NewCapitalService(store, services.WithCapitalClock(clock)),
	}
}

func purchaseRequest(chassis string, cash, bank, credit string) dto.RecordPurchaseRequest {
	total := d(cash).Add(d(bank)).Add(d(credit))
	return dto.RecordPurchaseRequest{
		PersonID:    sellerID,
		Vehicle:     dto.VehicleRequest{ChassisNumber: chassis, Brand: "Maruti", Model: "Swift", Year: 2019},
		TotalAmount: total,
		PaymentSplitRequest: dto.PaymentSplitRequest{
			CashAmount: d(cash), BankAmount: d(bank), CreditAmount: d(credit),
		},
		PurchaseDate: fixedNow,
	}
}

func emiSaleRequest(vehicleID string, saleDate time.Time) dto.RecordSaleRequest {
	return dto.RecordSaleRequest{
		CustomerID:   customerID,
		VehicleID:    vehicleID,
		PurchaseType: domain.PurchaseEmi,
		TotalAmount:  d("100000"),
		PaymentSplitRequest: dto.PaymentSplitRequest{
			CashAmount: d("10000"), BankAmount: decimal.Zero, CreditAmount: decimal.Zero,
		},
		Emi:      &dto.EmiPlanRequest{InterestRate: d("12"), Frequency: domain.FrequencyMonthly, DurationMonths: 12},
		SaleDate: saleDate,
	}
}

// stockVehicle records a purchase and returns the id of the vehicle it created.
func (l *ledger) stockVehicle(t *testing.T, chassis string) (vehicleID string, purchaseTxn *domain.PersonTransaction) {
	t.Helper()
	ctx := context.Background()
	txn, err := l.recorder.RecordPurchase(ctx, purchaseRequest(chassis, "40000", "0", "0"), userID)
	require.NoError(t, err)
	purchase, err := l.store.FindPurchaseByID(ctx, txn.RelatedRef)
	require.NoError(t, err)
	return purchase.ProductID, txn
}

// ledgerState is every aggregate a transaction can touch.
type ledgerState struct {
	Capital  map[domain.CapitalType]string
	Persons  map[string]string
	Products map[string]string // "missing", "sold" or "stock"
	Sales    map[string]string
}

func (l *ledger) capture(t *testing.T, productIDs []string, saleIDs []string) ledgerState {
	t.Helper()
	ctx := context.Background()
	st := ledgerState{
		Capital:  map[domain.CapitalType]string{},
		Persons:  map[string]string{},
		Products: map[string]string{},
		Sales:    map[string]string{},
	}
	balances, err := l.store.GetCapitalBalances(ctx)
	require.NoError(t, err)
	for ct, b := range balances {
		st.Capital[ct] = b.Balance.StringFixed(4)
	}
	for _, p := range seedPersons() {
		person, err := l.store.FindPersonByID(ctx, p.PersonID)
		require.NoError(t, err)
		st.Persons[p.PersonID] = person.Balance.StringFixed(4)
	}
	for _, id := range productIDs {
		product, err := l.store.FindProductByID(ctx, id)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			st.Products[id] = "missing"
		case err != nil:
			t.Fatalf("load product %s: %v", id, err)
		case product.Sold:
			st.Products[id] = "sold"
		default:
			st.Products[id] = "stock"
		}
	}
	for _, id := range saleIDs {
		sale, err := l.store.FindSaleByID(ctx, id)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			st.Sales[id] = "missing"
		case err != nil:
			t.Fatalf("load sale %s: %v", id, err)
		case sale.Emi != nil:
			st.Sales[id] = fmt.Sprintf("%s paid=%d remaining=%d due=%s", sale.Status,
				sale.Emi.PaidInstallments, sale.Emi.RemainingInstallments, sale.Emi.NextDueDate.Format(time.RFC3339))
		default:
			st.Sales[id] = string(sale.Status)
		}
	}
	return st
}

func (l *ledger) balance(t *testing.T, ct domain.CapitalType) decimal.Decimal {
	t.Helper()
	balances, err := l.store.GetCapitalBalances(context.Background())
	require.NoError(t, err)
	return balances[ct].Balance
}

func (l *ledger) personBalance(t *testing.T, personID string) decimal.Decimal {
	t.Helper()
	p, err := l.store.FindPersonByID(context.Background(), personID)
	require.NoError(t, err)
	return p.Balance
}
