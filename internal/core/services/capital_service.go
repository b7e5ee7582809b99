package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// capitalService owns the Cash, Bank and Credit running balances. Every change goes
// through RunAtomic and lands in the adjustment log.
type capitalService struct {
	BaseService
	repo portsrepo.LedgerRepositoryFacade
}

// CapitalServiceOption is a function that configures a capitalService
type CapitalServiceOption func(*capitalService)

// WithCapitalClock overrides the time source.
func WithCapitalClock(now func() time.Time) CapitalServiceOption {
	return func(s *capitalService) {
		s.Now = now
	}
}

// NewCapitalService creates a new CapitalSvc.
func NewCapitalService(repo portsrepo.LedgerRepositoryFacade, options ...CapitalServiceOption) portssvc.CapitalSvc {
	s := &capitalService{
		BaseService: newBaseService(),
		repo:        repo,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.CapitalSvc = (*capitalService)(nil)

// GetBalances returns every balance in Cash, Bank, Credit order.
func (s *capitalService) GetBalances(ctx context.Context) ([]domain.CapitalBalance, error) {
	balances, err := s.repo.GetCapitalBalances(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load capital balances")
		return nil, fmt.Errorf("failed to load capital balances: %w", err)
	}
	out := make([]domain.CapitalBalance, 0, len(domain.CapitalTypes))
	for _, ct := range domain.CapitalTypes {
		bal, ok := balances[ct]
		if !ok {
			bal = domain.CapitalBalance{Type: ct, Balance: decimal.Zero}
		}
		out = append(out, bal)
	}
	return out, nil
}

// AdjustBalance moves one balance by a signed delta.
func (s *capitalService) AdjustBalance(ctx context.Context, req dto.AdjustCapitalRequest, userID string) (*domain.CapitalBalance, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown capital type %q", apperrors.ErrValidation, req.Type)
	}
	if req.Delta.IsZero() {
		return nil, fmt.Errorf("%w: adjustment must not be zero", apperrors.ErrValidation)
	}
	return s.apply(ctx, req.Type, userID, domain.AdjustmentManual, req.Note, func(decimal.Decimal) decimal.Decimal {
		return req.Delta
	})
}

// SetBalance records target minus current as a single adjustment, so the log stays replayable.
func (s *capitalService) SetBalance(ctx context.Context, capitalType domain.CapitalType, req dto.SetCapitalRequest, userID string) (*domain.CapitalBalance, error) {
	if !capitalType.IsValid() {
		return nil, fmt.Errorf("%w: unknown capital type %q", apperrors.ErrValidation, capitalType)
	}
	return s.apply(ctx, capitalType, userID, domain.AdjustmentInitial, req.Note, func(current decimal.Decimal) decimal.Decimal {
		return req.Balance.Sub(current)
	})
}

func (s *capitalService) apply(ctx context.Context, capitalType domain.CapitalType, userID string, reason domain.AdjustmentReason, note string, deltaFor func(current decimal.Decimal) decimal.Decimal) (*domain.CapitalBalance, error) {
	now := s.Now()
	var result domain.CapitalBalance

	err := s.repo.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		current, err := tx.GetCapitalBalance(ctx, capitalType)
		if err != nil {
			return err
		}
		result = domain.CapitalBalance{Type: capitalType, Balance: current}
		delta := deltaFor(current)
		if delta.IsZero() {
			return nil
		}
		if err := tx.AdjustCapital(ctx, domain.CapitalAdjustment{
			AdjustmentID: s.NewID(),
			Type:         capitalType,
			Delta:        delta,
			Reason:       reason,
			Note:         note,
			CreatedAt:    now,
			CreatedBy:    userID,
		}); err != nil {
			return err
		}
		result.Balance = current.Add(delta)
		result.LastUpdatedAt = now
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to adjust capital balance", slog.String("capital_type", string(capitalType)))
		return nil, err
	}

	s.LogInfo(ctx, "Capital balance updated",
		slog.String("capital_type", string(capitalType)),
		slog.String("reason", string(reason)),
		slog.String("balance", result.Balance.String()))
	return &result, nil
}

// ListAdjustments returns the full adjustment log.
func (s *capitalService) ListAdjustments(ctx context.Context) ([]domain.CapitalAdjustment, error) {
	adjs, err := s.repo.ListCapitalAdjustments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list capital adjustments")
		return nil, fmt.Errorf("failed to list capital adjustments: %w", err)
	}
	return adjs, nil
}

// VerifyBalances replays the adjustment log and compares it to the stored balances.
func (s *capitalService) VerifyBalances(ctx context.Context) ([]domain.CapitalDiscrepancy, error) {
	snap, err := s.repo.GetCapitalSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load capital snapshot: %w", err)
	}
	balances := snap.Balances

	replayed := make(map[domain.CapitalType]decimal.Decimal, len(domain.CapitalTypes))
	for _, adj := range snap.Adjustments {
		replayed[adj.Type] = replayed[adj.Type].Add(adj.Delta)
	}

	discrepancies := make([]domain.CapitalDiscrepancy, 0)
	for _, ct := range domain.CapitalTypes {
		stored := balances[ct].Balance
		if !stored.Equal(replayed[ct]) {
			discrepancies = append(discrepancies, domain.CapitalDiscrepancy{Type: ct, Stored: stored, Replayed: replayed[ct]})
		}
	}
	if len(discrepancies) > 0 {
		s.LogWarn(ctx, "Capital balances disagree with adjustment log", slog.Int("discrepancies", len(discrepancies)))
	}
	return discrepancies, nil
}
