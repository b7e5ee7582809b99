package services

import (
	"context"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
)

// applyCapitalEffects writes one adjustment per non-zero capital delta, in Cash, Bank, Credit order.
func applyCapitalEffects(ctx context.Context, tx portsrepo.LedgerTx, effects domain.BalanceEffects, reason domain.AdjustmentReason, transactionID string, newID func() string, userID string, at time.Time) error {
	deltas := effects.Capital()
	for _, ct := range domain.CapitalTypes {
		delta, ok := deltas[ct]
		if !ok {
			continue
		}
		if err := tx.AdjustCapital(ctx, domain.CapitalAdjustment{
			AdjustmentID:   newID(),
			Type:           ct,
			Delta:          delta,
			Reason:         reason,
			TransactionRef: transactionID,
			CreatedAt:      at,
			CreatedBy:      userID,
		}); err != nil {
			return err
		}
	}
	return nil
}
