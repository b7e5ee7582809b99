package services

import (
	"context"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
)

// ReportingService serves the ledger aggregation views.
type ReportingService interface {
	// Start subscribes to the change feed and keeps the views current until ctx is cancelled.
	Start(ctx context.Context) error

	// GetLedgerViews returns the latest computed views. Results may lag the latest commit.
	GetLedgerViews(ctx context.Context) (*domain.LedgerViews, error)
}
