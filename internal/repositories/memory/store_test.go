package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/dealership_ledger/internal/repositories/memory"
	"github.com/SscSPs/dealership_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func seller() domain.Person {
	return domain.Person{PersonID: "p-1", Name: "Ravi", Type: domain.PersonMiddleMan, Balance: decimal.Zero}
}

func TestRunAtomic_CommitsAllChanges(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.WithPersons(seller()))

	err := store.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		if err := tx.InsertProduct(ctx, domain.Product{ProductID: "v-1", ChassisNumber: "CH-1"}); err != nil {
			return err
		}
		if err := tx.AdjustPersonBalance(ctx, "p-1", decimal.NewFromInt(500), "u-1", t0); err != nil {
			return err
		}
		return tx.AdjustCapital(ctx, domain.CapitalAdjustment{Type: domain.CapitalCash, Delta: decimal.NewFromInt(-500), CreatedAt: t0})
	})
	require.NoError(t, err)

	p, err := store.FindPersonByID(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, p.Balance.Equal(decimal.NewFromInt(500)))

	balances, err := store.GetCapitalBalances(ctx)
	require.NoError(t, err)
	assert.True(t, balances[domain.CapitalCash].Balance.Equal(decimal.NewFromInt(-500)))

	adjs, err := store.ListCapitalAdjustments(ctx)
	require.NoError(t, err)
	assert.Len(t, adjs, 1)

	_, err = store.FindProductByID(ctx, "v-1")
	assert.NoError(t, err)
}

func TestRunAtomic_FailureLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.WithPersons(seller()))
	boom := errors.New("boom")

	err := store.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		require.NoError(t, tx.InsertProduct(ctx, domain.Product{ProductID: "v-1", ChassisNumber: "CH-1"}))
		require.NoError(t, tx.AdjustPersonBalance(ctx, "p-1", decimal.NewFromInt(500), "u-1", t0))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, _ := store.FindPersonByID(ctx, "p-1")
	assert.True(t, p.Balance.IsZero())
	_, err = store.FindProductByID(ctx, "v-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRunAtomic_CommitHookFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.WithCommitHook(func() error { return errors.New("disk full") }))

	err := store.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		return tx.AdjustCapital(ctx, domain.CapitalAdjustment{Type: domain.CapitalBank, Delta: decimal.NewFromInt(10), CreatedAt: t0})
	})
	assert.ErrorIs(t, err, apperrors.ErrPersistence)

	balances, _ := store.GetCapitalBalances(ctx)
	assert.True(t, balances[domain.CapitalBank].Balance.IsZero())
}

func TestInsertProduct_DuplicateChassis(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.WithProducts(domain.Product{ProductID: "v-1", ChassisNumber: "CH-1"}))

	err := store.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		return tx.InsertProduct(ctx, domain.Product{ProductID: "v-2", ChassisNumber: "CH-1"})
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestListTransactions_OrderAndFilter(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	txns := []domain.PersonTransaction{
		{TransactionID: "b", Type: domain.TransactionSale, Status: domain.StatusCompleted, TransactionDate: t0},
		{TransactionID: "a", Type: domain.TransactionSale, Status: domain.StatusCompleted, TransactionDate: t0},
		{TransactionID: "c", Type: domain.TransactionPurchase, Status: domain.StatusCancelled, TransactionDate: t0.Add(-time.Hour)},
	}
	require.NoError(t, store.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		for _, txn := range txns {
			if err := tx.InsertTransaction(ctx, txn); err != nil {
				return err
			}
		}
		return nil
	}))

	all, err := store.ListTransactions(ctx, domain.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].TransactionID, all[1].TransactionID, all[2].TransactionID})

	completed, err := store.ListTransactions(ctx, domain.TransactionFilter{Statuses: []domain.TransactionStatus{domain.StatusCompleted}})
	require.NoError(t, err)
	assert.Len(t, completed, 2)
}

func TestListTransactionsPage_AfterCursor(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		for _, id := range []string{"a", "b", "c", "d"} {
			txn := domain.PersonTransaction{TransactionID: id, Type: domain.TransactionSale, Status: domain.StatusCompleted, TransactionDate: t0}
			if err := tx.InsertTransaction(ctx, txn); err != nil {
				return err
			}
		}
		return nil
	}))

	first, err := store.ListTransactionsPage(ctx, domain.TransactionFilter{}, nil, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "b", first[1].TransactionID)

	after := pagination.Cursor{Date: first[1].TransactionDate, CreatedAt: first[1].CreatedAt, ID: first[1].TransactionID}
	rest, err := store.ListTransactionsPage(ctx, domain.TransactionFilter{}, &after, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, []string{rest[0].TransactionID, rest[1].TransactionID})
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	sale := domain.VehicleSale{SaleID: "s-1", PurchaseType: domain.PurchaseEmi, Status: domain.SaleActive,
		Emi: &domain.EmiDetails{InstallmentsCount: 3, RemainingInstallments: 3}}
	require.NoError(t, store.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error { return tx.InsertSale(ctx, sale) }))

	got, err := store.FindSaleByID(ctx, "s-1")
	require.NoError(t, err)
	got.Emi.RemainingInstallments = 0

	again, _ := store.FindSaleByID(ctx, "s-1")
	assert.Equal(t, 3, again.Emi.RemainingInstallments)
}

func TestSubscribeTransactions(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := store.SubscribeTransactions(ctx, domain.TransactionFilter{})
	require.NoError(t, err)

	first := <-ch
	assert.Empty(t, first)

	require.NoError(t, store.RunAtomic(context.Background(), func(tx portsrepo.LedgerTx) error {
		return tx.InsertTransaction(context.Background(), domain.PersonTransaction{TransactionID: "x", TransactionDate: t0})
	}))

	select {
	case snap := <-ch:
		require.Len(t, snap, 1)
		assert.Equal(t, "x", snap[0].TransactionID)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after commit")
	}

	cancel()
	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestSubscribeSales_LatestWins(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := memory.NewStore()

	ch, err := store.SubscribeSales(ctx, domain.SaleFilter{})
	require.NoError(t, err)

	for _, id := range []string{"s-1", "s-2", "s-3"} {
		id := id
		require.NoError(t, store.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
			return tx.InsertSale(ctx, domain.VehicleSale{SaleID: id, SaleDate: t0})
		}))
	}

	// Nobody read in between, so only the newest snapshot is buffered.
	snap := <-ch
	assert.Len(t, snap, 3)
}
