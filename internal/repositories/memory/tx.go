package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// memTx mutates a private working copy owned by one RunAtomic call.
type memTx struct {
	st *state
}

func (t *memTx) GetTransaction(ctx context.Context, transactionID string) (*domain.PersonTransaction, error) {
	txn, ok := t.st.transactions[transactionID]
	if !ok {
		return nil, notFound("transaction", transactionID)
	}
	out := cloneTransaction(txn)
	return &out, nil
}

func (t *memTx) InsertTransaction(ctx context.Context, txn domain.PersonTransaction) error {
	if _, exists := t.st.transactions[txn.TransactionID]; exists {
		return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrDuplicate)
	}
	t.st.transactions[txn.TransactionID] = cloneTransaction(txn)
	return nil
}

func (t *memTx) UpdateTransaction(ctx context.Context, txn domain.PersonTransaction) error {
	if _, exists := t.st.transactions[txn.TransactionID]; !exists {
		return notFound("transaction", txn.TransactionID)
	}
	t.st.transactions[txn.TransactionID] = cloneTransaction(txn)
	return nil
}

func (t *memTx) GetSale(ctx context.Context, saleID string) (*domain.VehicleSale, error) {
	sale, ok := t.st.sales[saleID]
	if !ok {
		return nil, notFound("sale", saleID)
	}
	out := sale.Clone()
	return &out, nil
}

func (t *memTx) InsertSale(ctx context.Context, sale domain.VehicleSale) error {
	if _, exists := t.st.sales[sale.SaleID]; exists {
		return fmt.Errorf("sale %s: %w", sale.SaleID, apperrors.ErrDuplicate)
	}
	t.st.sales[sale.SaleID] = sale.Clone()
	return nil
}

func (t *memTx) UpdateSale(ctx context.Context, sale domain.VehicleSale) error {
	if _, exists := t.st.sales[sale.SaleID]; !exists {
		return notFound("sale", sale.SaleID)
	}
	t.st.sales[sale.SaleID] = sale.Clone()
	return nil
}

func (t *memTx) DeleteSale(ctx context.Context, saleID string) error {
	if _, exists := t.st.sales[saleID]; !exists {
		return notFound("sale", saleID)
	}
	delete(t.st.sales, saleID)
	return nil
}

func (t *memTx) GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	p, ok := t.st.purchases[purchaseID]
	if !ok {
		return nil, notFound("purchase", purchaseID)
	}
	out := p.Clone()
	return &out, nil
}

func (t *memTx) InsertPurchase(ctx context.Context, purchase domain.Purchase) error {
	if _, exists := t.st.purchases[purchase.PurchaseID]; exists {
		return fmt.Errorf("purchase %s: %w", purchase.PurchaseID, apperrors.ErrDuplicate)
	}
	t.st.purchases[purchase.PurchaseID] = purchase.Clone()
	return nil
}

func (t *memTx) DeletePurchase(ctx context.Context, purchaseID string) error {
	if _, exists := t.st.purchases[purchaseID]; !exists {
		return notFound("purchase", purchaseID)
	}
	delete(t.st.purchases, purchaseID)
	return nil
}

func (t *memTx) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	p, ok := t.st.products[productID]
	if !ok {
		return nil, notFound("product", productID)
	}
	return &p, nil
}

func (t *memTx) InsertProduct(ctx context.Context, product domain.Product) error {
	if _, exists := t.st.products[product.ProductID]; exists {
		return fmt.Errorf("product %s: %w", product.ProductID, apperrors.ErrDuplicate)
	}
	if exists, _ := t.ChassisExists(ctx, product.ChassisNumber); exists {
		return fmt.Errorf("chassis number %s: %w", product.ChassisNumber, apperrors.ErrDuplicate)
	}
	t.st.products[product.ProductID] = product
	return nil
}

func (t *memTx) UpdateProduct(ctx context.Context, product domain.Product) error {
	if _, exists := t.st.products[product.ProductID]; !exists {
		return notFound("product", product.ProductID)
	}
	t.st.products[product.ProductID] = product
	return nil
}

func (t *memTx) DeleteProduct(ctx context.Context, productID string) error {
	if _, exists := t.st.products[productID]; !exists {
		return notFound("product", productID)
	}
	delete(t.st.products, productID)
	return nil
}

func (t *memTx) ChassisExists(ctx context.Context, chassisNumber string) (bool, error) {
	for _, p := range t.st.products {
		if p.ChassisNumber == chassisNumber {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) GetPerson(ctx context.Context, personID string) (*domain.Person, error) {
	p, ok := t.st.persons[personID]
	if !ok {
		return nil, notFound("person", personID)
	}
	return &p, nil
}

func (t *memTx) AdjustPersonBalance(ctx context.Context, personID string, delta decimal.Decimal, userID string, at time.Time) error {
	p, ok := t.st.persons[personID]
	if !ok {
		return notFound("person", personID)
	}
	p.Balance = p.Balance.Add(delta)
	p.Touch(userID, at)
	t.st.persons[personID] = p
	return nil
}

func (t *memTx) GetCapitalBalance(ctx context.Context, capitalType domain.CapitalType) (decimal.Decimal, error) {
	bal, ok := t.st.capital[capitalType]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown capital type %q", apperrors.ErrValidation, capitalType)
	}
	return bal.Balance, nil
}

func (t *memTx) AdjustCapital(ctx context.Context, adj domain.CapitalAdjustment) error {
	bal, ok := t.st.capital[adj.Type]
	if !ok {
		return fmt.Errorf("%w: unknown capital type %q", apperrors.ErrValidation, adj.Type)
	}
	bal.Balance = bal.Balance.Add(adj.Delta)
	bal.LastUpdatedAt = adj.CreatedAt
	t.st.capital[adj.Type] = bal
	t.st.adjustments = append(t.st.adjustments, adj)
	return nil
}
