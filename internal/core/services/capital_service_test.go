package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/dealership_ledger/internal/core/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/SscSPs/dealership_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CapitalServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	l   *ledger
}

func (s *CapitalServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.l = newLedger(s.T())
}

func TestCapitalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CapitalServiceTestSuite))
}

func (s *CapitalServiceTestSuite) TestGetBalances_OrderedAndZeroed() {
	balances, err := s.l.capital.GetBalances(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(balances, 3)
	for i, ct := range domain.CapitalTypes {
		s.Equal(ct, balances[i].Type)
		s.True(balances[i].Balance.IsZero())
	}
}

func (s *CapitalServiceTestSuite) TestSetBalance_RecordsDifference() {
	bal, err := s.l.capital.SetBalance(s.ctx, domain.CapitalCash, dto.SetCapitalRequest{Balance: d("50000"), Note: "opening"}, userID)
	s.Require().NoError(err)
	s.True(bal.Balance.Equal(d("50000")))

	bal, err = s.l.capital.SetBalance(s.ctx, domain.CapitalCash, dto.SetCapitalRequest{Balance: d("42000")}, userID)
	s.Require().NoError(err)
	s.True(bal.Balance.Equal(d("42000")))

	adjs, err := s.l.capital.ListAdjustments(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(adjs, 2)
	s.True(adjs[0].Delta.Equal(d("50000")))
	s.True(adjs[1].Delta.Equal(d("-8000")))
	s.Equal(domain.AdjustmentInitial, adjs[1].Reason)
	s.Equal("opening", adjs[0].Note)
	s.Equal(userID, adjs[0].CreatedBy)
}

func (s *CapitalServiceTestSuite) TestSetBalance_SameValueIsNoop() {
	_, err := s.l.capital.SetBalance(s.ctx, domain.CapitalBank, dto.SetCapitalRequest{Balance: d("1000")}, userID)
	s.Require().NoError(err)
	_, err = s.l.capital.SetBalance(s.ctx, domain.CapitalBank, dto.SetCapitalRequest{Balance: d("1000.00")}, userID)
	s.Require().NoError(err)

	adjs, err := s.l.capital.ListAdjustments(s.ctx)
	s.Require().NoError(err)
	s.Len(adjs, 1)
}

func (s *CapitalServiceTestSuite) TestSetBalance_UnknownType() {
	_, err := s.l.capital.SetBalance(s.ctx, domain.CapitalType("Gold"), dto.SetCapitalRequest{Balance: d("1")}, userID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *CapitalServiceTestSuite) TestAdjustBalance() {
	bal, err := s.l.capital.AdjustBalance(s.ctx, dto.AdjustCapitalRequest{Type: domain.CapitalCredit, Delta: d("-250.50"), Note: "write-off"}, userID)
	s.Require().NoError(err)
	s.True(bal.Balance.Equal(d("-250.50")))
	s.Equal(fixedNow, bal.LastUpdatedAt)

	adjs, err := s.l.capital.ListAdjustments(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(adjs, 1)
	s.Equal(domain.AdjustmentManual, adjs[0].Reason)
}

func (s *CapitalServiceTestSuite) TestAdjustBalance_Rejects() {
	_, err := s.l.capital.AdjustBalance(s.ctx, dto.AdjustCapitalRequest{Type: domain.CapitalCash, Delta: decimal.Zero}, userID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.l.capital.AdjustBalance(s.ctx, dto.AdjustCapitalRequest{Type: "Gold", Delta: d("1")}, userID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

// Balances depend only on the multiset of applied operations, not their order.
func (s *CapitalServiceTestSuite) TestBalanceAdditivity_OrderIndependent() {
	type op func(l *ledger)
	adjust := func(ct domain.CapitalType, delta string) op {
		return func(l *ledger) {
			_, err := l.capital.AdjustBalance(s.ctx, dto.AdjustCapitalRequest{Type: ct, Delta: d(delta)}, userID)
			s.Require().NoError(err)
		}
	}
	brokerFee := func(l *ledger) {
		_, err := l.recorder.RecordBrokerFee(s.ctx, dto.RecordBrokerFeeRequest{
			PersonID: brokerID, Amount: d("900"),
			PaymentSplitRequest: dto.PaymentSplitRequest{CashAmount: d("400"), BankAmount: d("300"), CreditAmount: d("200")},
			FeeDate:             fixedNow,
		}, userID)
		s.Require().NoError(err)
	}
	ops := []op{adjust(domain.CapitalCash, "1000"), adjust(domain.CapitalBank, "-75.25"), brokerFee, adjust(domain.CapitalCash, "-10")}

	forward := newLedger(s.T())
	for _, o := range ops {
		o(forward)
	}
	backward := newLedger(s.T())
	for i := len(ops) - 1; i >= 0; i-- {
		ops[i](backward)
	}

	s.Equal(forward.capture(s.T(), nil, nil), backward.capture(s.T(), nil, nil))
	s.True(forward.balance(s.T(), domain.CapitalCash).Equal(d("590")))
	s.True(forward.balance(s.T(), domain.CapitalBank).Equal(d("-375.25")))
	s.True(forward.balance(s.T(), domain.CapitalCredit).Equal(d("200")))
}

func (s *CapitalServiceTestSuite) TestVerifyBalances_ReplayMatches() {
	_, err := s.l.capital.SetBalance(s.ctx, domain.CapitalCash, dto.SetCapitalRequest{Balance: d("100000")}, userID)
	s.Require().NoError(err)
	vehicleID, purchaseTxn := s.l.stockVehicle(s.T(), "CH-CAP")
	_, _, err = s.l.recorder.RecordSale(s.ctx, emiSaleRequest(vehicleID, fixedNow), userID)
	s.Require().NoError(err)
	_, err = s.l.recorder.RecordBrokerFee(s.ctx, dto.RecordBrokerFeeRequest{
		PersonID: brokerID, Amount: d("100"),
		PaymentSplitRequest: dto.PaymentSplitRequest{CashAmount: d("100")},
		FeeDate:             fixedNow, RelatedRef: purchaseTxn.RelatedRef,
	}, userID)
	s.Require().NoError(err)

	discrepancies, err := s.l.capital.VerifyBalances(s.ctx)
	s.Require().NoError(err)
	s.Empty(discrepancies)
}

// skewedStore reports a cash balance that the adjustment log cannot explain.
type skewedStore struct {
	*memory.Store
	skew decimal.Decimal
}

func (s *skewedStore) GetCapitalSnapshot(ctx context.Context) (*domain.CapitalSnapshot, error) {
	snap, err := s.Store.GetCapitalSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	cash := snap.Balances[domain.CapitalCash]
	cash.Balance = cash.Balance.Add(s.skew)
	snap.Balances[domain.CapitalCash] = cash
	return snap, nil
}

func TestVerifyBalances_ReportsDiscrepancy(t *testing.T) {
	ctx := context.Background()
	store := &skewedStore{Store: memory.NewStore(memory.WithPersons(seedPersons()...)), skew: d("12.5")}
	capital := services.NewCapitalService(store)

	_, err := capital.AdjustBalance(ctx, dto.AdjustCapitalRequest{Type: domain.CapitalCash, Delta: d("100")}, userID)
	require.NoError(t, err)

	discrepancies, err := capital.VerifyBalances(ctx)
	require.NoError(t, err)
	require.Len(t, discrepancies, 1)
	assert.Equal(t, domain.CapitalCash, discrepancies[0].Type)
	assert.True(t, discrepancies[0].Stored.Equal(d("112.5")))
	assert.True(t, discrepancies[0].Replayed.Equal(d("100")))
}

// interleavingStore commits a cash adjustment right after every capital read returns,
// so any check assembled from more than one read sees a write land in between.
type interleavingStore struct {
	*memory.Store
	writes int
}

func (s *interleavingStore) commitLateWrite(ctx context.Context) {
	s.writes++
	id := fmt.Sprintf("late-%d", s.writes)
	_ = s.Store.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		return tx.AdjustCapital(ctx, domain.CapitalAdjustment{
			AdjustmentID: id, Type: domain.CapitalCash, Delta: d("250"),
			Reason: domain.AdjustmentManual, CreatedAt: fixedNow, CreatedBy: userID,
		})
	})
}

func (s *interleavingStore) GetCapitalBalances(ctx context.Context) (map[domain.CapitalType]domain.CapitalBalance, error) {
	defer s.commitLateWrite(ctx)
	return s.Store.GetCapitalBalances(ctx)
}

func (s *interleavingStore) ListCapitalAdjustments(ctx context.Context) ([]domain.CapitalAdjustment, error) {
	defer s.commitLateWrite(ctx)
	return s.Store.ListCapitalAdjustments(ctx)
}

func (s *interleavingStore) GetCapitalSnapshot(ctx context.Context) (*domain.CapitalSnapshot, error) {
	defer s.commitLateWrite(ctx)
	return s.Store.GetCapitalSnapshot(ctx)
}

func TestVerifyBalances_WriteBetweenReadsIsNotADiscrepancy(t *testing.T) {
	ctx := context.Background()
	store := &interleavingStore{Store: memory.NewStore()}
	capital := services.NewCapitalService(store)

	discrepancies, err := capital.VerifyBalances(ctx)
	require.NoError(t, err)
	assert.Empty(t, discrepancies)
	require.Equal(t, 1, store.writes)

	discrepancies, err = capital.VerifyBalances(ctx)
	require.NoError(t, err)
	assert.Empty(t, discrepancies)

	balances, err := capital.GetBalances(ctx)
	require.NoError(t, err)
	assert.True(t, balances[0].Balance.Equal(d("500")), "cash %s", balances[0].Balance)
}

func TestVerifyBalances_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	capital := services.NewCapitalService(store)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := capital.AdjustBalance(ctx, dto.AdjustCapitalRequest{Type: domain.CapitalBank, Delta: d("10")}, userID)
				assert.NoError(t, err)
			}
		}()
	}
	for i := 0; i < 100; i++ {
		discrepancies, err := capital.VerifyBalances(ctx)
		require.NoError(t, err)
		require.Empty(t, discrepancies)
	}
	wg.Wait()
}
