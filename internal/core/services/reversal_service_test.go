package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/dealership_ledger/internal/core/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/SscSPs/dealership_ledger/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReversalGuard ---
type MockReversalGuard struct {
	mock.Mock
}

var _ portsrepo.ReversalGuard = (*MockReversalGuard)(nil)

func (m *MockReversalGuard) Acquire(ctx context.Context, transactionID string) (func(), error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

type ReversalServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	l   *ledger
}

func (s *ReversalServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.l = newLedger(s.T())
}

func TestReversalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReversalServiceTestSuite))
}

func (s *ReversalServiceTestSuite) reverse(id string) *domain.ReversalResult {
	res, err := s.l.reversal.ReverseTransaction(s.ctx, id, userID)
	s.Require().NoError(err)
	return res
}

func (s *ReversalServiceTestSuite) TestInverse_Purchase() {
	before := s.l.capture(s.T(), nil, nil)

	txn, err := s.l.recorder.RecordPurchase(s.ctx, purchaseRequest("CH-1", "30000", "5000", "15000"), userID)
	s.Require().NoError(err)
	purchase, err := s.l.store.FindPurchaseByID(s.ctx, txn.RelatedRef)
	s.Require().NoError(err)

	res := s.reverse(txn.TransactionID)
	s.False(res.Partial)
	s.Equal(domain.TransactionPurchase, res.Type)

	s.Equal(before, s.l.capture(s.T(), nil, nil))
	s.Equal("missing", s.l.capture(s.T(), []string{purchase.ProductID}, nil).Products[purchase.ProductID])
	_, err = s.l.store.FindPurchaseByID(s.ctx, purchase.PurchaseID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	// The chassis can be bought again once the purchase is undone.
	_, err = s.l.recorder.RecordPurchase(s.ctx, purchaseRequest("CH-1", "100", "0", "0"), userID)
	s.NoError(err)
}

func (s *ReversalServiceTestSuite) TestInverse_FullPaymentSale() {
	vehicleID, _ := s.l.stockVehicle(s.T(), "CH-2")
	before := s.l.capture(s.T(), []string{vehicleID}, nil)

	txn, sale, err := s.l.recorder.RecordSale(s.ctx, dto.RecordSaleRequest{
		CustomerID: customerID, VehicleID: vehicleID, PurchaseType: domain.PurchaseFullPayment,
		TotalAmount:         d("70000"),
		PaymentSplitRequest: dto.PaymentSplitRequest{CashAmount: d("20000"), BankAmount: d("40000"), CreditAmount: d("10000")},
		SaleDate:            fixedNow,
	}, userID)
	s.Require().NoError(err)

	s.reverse(txn.TransactionID)

	after := s.l.capture(s.T(), []string{vehicleID}, []string{sale.SaleID})
	s.Equal(before.Capital, after.Capital)
	s.Equal(before.Persons, after.Persons)
	s.Equal("stock", after.Products[vehicleID])
	s.Equal("missing", after.Sales[sale.SaleID])
}

func (s *ReversalServiceTestSuite) TestInverse_EmiSale() {
	vehicleID, _ := s.l.stockVehicle(s.T(), "CH-3")
	before := s.l.capture(s.T(), []string{vehicleID}, nil)

	txn, _, err := s.l.recorder.RecordSale(s.ctx, emiSaleRequest(vehicleID, fixedNow), userID)
	s.Require().NoError(err)
	s.reverse(txn.TransactionID)

	s.Equal(before, s.l.capture(s.T(), []string{vehicleID}, nil))
}

func (s *ReversalServiceTestSuite) TestInverse_EmiPaymentRestoresClampedDueDate() {
	vehicleID, _ := s.l.stockVehicle(s.T(), "CH-4")
	// Jan 31 sale: first due Feb 29, Mar 29 after one payment. Reversal must land on Feb 29.
	_, sale, err := s.l.recorder.RecordSale(s.ctx, emiSaleRequest(vehicleID, fixedNow), userID)
	s.Require().NoError(err)

	before := s.l.capture(s.T(), []string{vehicleID}, []string{sale.SaleID})
	pay, err := s.l.recorder.RecordEmiPayment(s.ctx, sale.SaleID, dto.RecordEmiPaymentRequest{CashAmount: d("9300"), BankAmount: d("9000"), PaymentDate: fixedNow}, userID)
	s.Require().NoError(err)

	s.reverse(pay.TransactionID)
	s.Equal(before, s.l.capture(s.T(), []string{vehicleID}, []string{sale.SaleID}))
}

func (s *ReversalServiceTestSuite) TestInverse_FinalEmiPaymentReopensSale() {
	vehicleID, _ := s.l.stockVehicle(s.T(), "CH-5")
	req := emiSaleRequest(vehicleID, fixedNow)
	req.Emi.DurationMonths = 2
	_, sale, err := s.l.recorder.RecordSale(s.ctx, req, userID)
	s.Require().NoError(err)

	payReq := dto.RecordEmiPaymentRequest{CashAmount: d("1"), PaymentDate: fixedNow}
	_, err = s.l.recorder.RecordEmiPayment(s.ctx, sale.SaleID, payReq, userID)
	s.Require().NoError(err)
	before := s.l.capture(s.T(), nil, []string{sale.SaleID})

	last, err := s.l.recorder.RecordEmiPayment(s.ctx, sale.SaleID, payReq, userID)
	s.Require().NoError(err)
	completed, _ := s.l.store.FindSaleByID(s.ctx, sale.SaleID)
	s.Equal(domain.SaleCompleted, completed.Status)

	s.reverse(last.TransactionID)

	s.Equal(before, s.l.capture(s.T(), nil, []string{sale.SaleID}))
	reopened, _ := s.l.store.FindSaleByID(s.ctx, sale.SaleID)
	s.Equal(domain.SaleActive, reopened.Status)
	s.Equal(domain.EmiInProgress, reopened.EmiState())
}

func (s *ReversalServiceTestSuite) TestInverse_BrokerFee() {
	before := s.l.capture(s.T(), nil, nil)

	txn, err := s.l.recorder.RecordBrokerFee(s.ctx, dto.RecordBrokerFeeRequest{
		PersonID:            brokerID,
		Amount:              d("3000"),
		PaymentSplitRequest: dto.PaymentSplitRequest{BankAmount: d("1000"), CreditAmount: d("2000")},
		FeeDate:             fixedNow,
	}, userID)
	s.Require().NoError(err)

	s.reverse(txn.TransactionID)
	s.Equal(before, s.l.capture(s.T(), nil, nil))
}

func (s *ReversalServiceTestSuite) TestReverse_AtMostOnce() {
	txn, err := s.l.recorder.RecordBrokerFee(s.ctx, dto.RecordBrokerFeeRequest{
		PersonID: brokerID, Amount: d("500"),
		PaymentSplitRequest: dto.PaymentSplitRequest{CashAmount: d("500")},
		FeeDate:             fixedNow,
	}, userID)
	s.Require().NoError(err)

	s.reverse(txn.TransactionID)
	afterFirst := s.l.capture(s.T(), nil, nil)

	_, err = s.l.reversal.ReverseTransaction(s.ctx, txn.TransactionID, userID)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.ErrorIs(err, services.ErrAlreadyReversed)
	s.Equal(afterFirst, s.l.capture(s.T(), nil, nil))

	stored, err := s.l.store.FindTransactionByID(s.ctx, txn.TransactionID)
	s.Require().NoError(err)
	s.Equal(domain.StatusCancelled, stored.Status)
	s.Require().NotNil(stored.ReversedAt)
	s.Equal(userID, stored.ReversedBy)
}

func (s *ReversalServiceTestSuite) TestReverse_NotFound() {
	_, err := s.l.reversal.ReverseTransaction(s.ctx, "does-not-exist", userID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ReversalServiceTestSuite) TestReverse_PartialWhenRelatedRecordMissing() {
	txn, err := s.l.recorder.RecordPurchase(s.ctx, purchaseRequest("CH-6", "1000", "0", "500"), userID)
	s.Require().NoError(err)
	purchase, err := s.l.store.FindPurchaseByID(s.ctx, txn.RelatedRef)
	s.Require().NoError(err)
	store := &missingProductStore{Store: s.l.store, productID: purchase.ProductID}
	reversal := services.NewReversalService(store)

	res, err := reversal.ReverseTransaction(s.ctx, txn.TransactionID, userID)
	s.Require().NoError(err)
	s.True(res.Partial)
	s.Len(res.Warnings, 1)

	s.True(s.l.balance(s.T(), domain.CapitalCash).IsZero())
	s.True(s.l.balance(s.T(), domain.CapitalCredit).IsZero())
	s.True(s.l.personBalance(s.T(), sellerID).IsZero())
}

func (s *ReversalServiceTestSuite) TestReverse_PurchaseOfSoldVehicleConflicts() {
	vehicleID, purchaseTxn := s.l.stockVehicle(s.T(), "CH-7")
	_, _, err := s.l.recorder.RecordSale(s.ctx, emiSaleRequest(vehicleID, fixedNow), userID)
	s.Require().NoError(err)
	before := s.l.capture(s.T(), []string{vehicleID}, nil)

	_, err = s.l.reversal.ReverseTransaction(s.ctx, purchaseTxn.TransactionID, userID)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.ErrorIs(err, services.ErrVehicleResold)
	s.Equal(before, s.l.capture(s.T(), []string{vehicleID}, nil))
}

func (s *ReversalServiceTestSuite) TestReverse_SaleWithPaymentsConflicts() {
	vehicleID, _ := s.l.stockVehicle(s.T(), "CH-8")
	saleTxn, sale, err := s.l.recorder.RecordSale(s.ctx, emiSaleRequest(vehicleID, fixedNow), userID)
	s.Require().NoError(err)
	_, err = s.l.recorder.RecordEmiPayment(s.ctx, sale.SaleID, dto.RecordEmiPaymentRequest{CashAmount: d("18300"), PaymentDate: fixedNow}, userID)
	s.Require().NoError(err)

	_, err = s.l.reversal.ReverseTransaction(s.ctx, saleTxn.TransactionID, userID)
	s.ErrorIs(err, services.ErrSaleHasPayments)
}

func (s *ReversalServiceTestSuite) TestReverse_EarlierEmiPaymentConflicts() {
	vehicleID, _ := s.l.stockVehicle(s.T(), "CH-9")
	_, sale, err := s.l.recorder.RecordSale(s.ctx, emiSaleRequest(vehicleID, fixedNow), userID)
	s.Require().NoError(err)

	payReq := dto.RecordEmiPaymentRequest{CashAmount: d("18300"), PaymentDate: fixedNow}
	first, err := s.l.recorder.RecordEmiPayment(s.ctx, sale.SaleID, payReq, userID)
	s.Require().NoError(err)
	second, err := s.l.recorder.RecordEmiPayment(s.ctx, sale.SaleID, payReq, userID)
	s.Require().NoError(err)

	_, err = s.l.reversal.ReverseTransaction(s.ctx, first.TransactionID, userID)
	s.ErrorIs(err, services.ErrLaterEmiPaymentsExist)

	// Newest first works.
	s.reverse(second.TransactionID)
	s.reverse(first.TransactionID)
	current, _ := s.l.store.FindSaleByID(s.ctx, sale.SaleID)
	s.Equal(0, current.Emi.PaidInstallments)
	s.Equal(time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC), current.Emi.NextDueDate)
}

func (s *ReversalServiceTestSuite) TestReverse_ConcurrentCallsReverseOnce() {
	txn, err := s.l.recorder.RecordBrokerFee(s.ctx, dto.RecordBrokerFeeRequest{
		PersonID: brokerID, Amount: d("750"),
		PaymentSplitRequest: dto.PaymentSplitRequest{CashAmount: d("750")},
		FeeDate:             fixedNow,
	}, userID)
	s.Require().NoError(err)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.l.reversal.ReverseTransaction(s.ctx, txn.TransactionID, userID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if apperrors.IsConflict(err) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(workers-1, conflicts)
	s.True(s.l.balance(s.T(), domain.CapitalCash).IsZero())
}

func TestReverse_GuardRejectsInFlightReversal(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	txn, err := l.recorder.RecordBrokerFee(ctx, dto.RecordBrokerFeeRequest{
		PersonID: brokerID, Amount: d("100"),
		PaymentSplitRequest: dto.PaymentSplitRequest{CashAmount: d("100")},
		FeeDate:             fixedNow,
	}, userID)
	require.NoError(t, err)

	guard := new(MockReversalGuard)
	guard.On("Acquire", mock.Anything, txn.TransactionID).Return(nil, apperrors.ErrConflict).Once()
	reversal := services.NewReversalService(l.store, services.WithReversalGuard(guard))

	_, err = reversal.ReverseTransaction(ctx, txn.TransactionID, userID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.True(t, l.balance(t, domain.CapitalCash).Equal(d("-100")), "rejected reversal must not move balances")
	guard.AssertExpectations(t)
}

func TestReverse_GuardReleasedAfterReversal(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	txn, err := l.recorder.RecordBrokerFee(ctx, dto.RecordBrokerFeeRequest{
		PersonID: brokerID, Amount: d("100"),
		PaymentSplitRequest: dto.PaymentSplitRequest{CashAmount: d("100")},
		FeeDate:             fixedNow,
	}, userID)
	require.NoError(t, err)

	released := false
	guard := new(MockReversalGuard)
	guard.On("Acquire", mock.Anything, txn.TransactionID).Return(func() { released = true }, nil).Once()
	reversal := services.NewReversalService(l.store, services.WithReversalGuard(guard))

	_, err = reversal.ReverseTransaction(ctx, txn.TransactionID, userID)
	require.NoError(t, err)
	assert.True(t, released)
	guard.AssertExpectations(t)
}

// missingProductStore hides one vehicle inside atomic units, as if it had been removed
// outside the ledger.
type missingProductStore struct {
	*memory.Store
	productID string
}

func (m *missingProductStore) RunAtomic(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	return m.Store.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		return fn(missingProductTx{LedgerTx: tx, productID: m.productID})
	})
}

type missingProductTx struct {
	portsrepo.LedgerTx
	productID string
}

func (t missingProductTx) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if productID == t.productID {
		return nil, fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	return t.LedgerTx.GetProduct(ctx, productID)
}
