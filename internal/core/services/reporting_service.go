package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/utils/accounting"
	"golang.org/x/sync/singleflight"
)

const (
	ledgerViewsKey = "ledger_views"

	defaultFeedRetryDelay = time.Second
	maxFeedRetryDelay     = 30 * time.Second
)

var completedOnly = domain.TransactionFilter{Statuses: []domain.TransactionStatus{domain.StatusCompleted}}

// reportingService keeps the ledger aggregation views current from the change feed.
// The views are pure recomputations; the cache is the only state.
type reportingService struct {
	BaseService
	repo portsrepo.LedgerRepositoryFacade

	mu      sync.RWMutex
	views   *domain.LedgerViews
	started bool

	loads      singleflight.Group
	retryDelay time.Duration
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the time source used for ComputedAt.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.Now = now
	}
}

// WithFeedRetryDelay sets the initial wait before resubscribing after a feed closes.
// The wait doubles on every failed attempt up to 30s.
func WithFeedRetryDelay(d time.Duration) ReportingServiceOption {
	return func(s *reportingService) {
		s.retryDelay = d
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.LedgerRepositoryFacade, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		BaseService: newBaseService(),
		repo:        repo,
		retryDelay:  defaultFeedRetryDelay,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Start subscribes to transactions and sales and recomputes the views on every snapshot.
// Calling it more than once is a no-op. If either feed closes before ctx is done, the cache
// is dropped and the service resubscribes in the background.
func (s *reportingService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	feedCtx, stop := context.WithCancel(ctx)
	txnCh, err := s.repo.SubscribeTransactions(feedCtx, completedOnly)
	if err != nil {
		stop()
		s.resetStarted()
		return fmt.Errorf("failed to subscribe to transactions: %w", err)
	}
	saleCh, err := s.repo.SubscribeSales(feedCtx, domain.SaleFilter{})
	if err != nil {
		stop()
		s.resetStarted()
		return fmt.Errorf("failed to subscribe to sales: %w", err)
	}

	go s.run(ctx, stop, txnCh, saleCh)
	s.LogInfo(ctx, "Ledger views subscription started")
	return nil
}

func (s *reportingService) resetStarted() {
	s.mu.Lock()
	s.started = false
	s.mu.Unlock()
}

// run folds both feeds into the cache. Either feed closing ends the run, since views built
// from one live feed and one frozen snapshot would be inconsistent.
func (s *reportingService) run(ctx context.Context, stop context.CancelFunc, txnCh <-chan []domain.PersonTransaction, saleCh <-chan []domain.VehicleSale) {
	var (
		txns      []domain.PersonTransaction
		sales     []domain.VehicleSale
		haveTxns  bool
		haveSales bool
		closed    string
	)
	for closed == "" {
		select {
		case snap, ok := <-txnCh:
			if !ok {
				closed = "transactions"
				continue
			}
			txns, haveTxns = snap, true
		case snap, ok := <-saleCh:
			if !ok {
				closed = "sales"
				continue
			}
			sales, haveSales = snap, true
		}
		if haveTxns && haveSales {
			views := accounting.BuildLedgerViews(txns, sales, s.Now())
			s.mu.Lock()
			s.views = &views
			s.mu.Unlock()
		}
	}

	stop()
	s.mu.Lock()
	s.started = false
	s.views = nil
	s.mu.Unlock()

	if ctx.Err() != nil {
		s.LogInfo(ctx, "Ledger views subscription stopped")
		return
	}
	s.LogWarn(ctx, "Ledger views feed closed unexpectedly, resubscribing", slog.String("feed", closed))
	go s.resubscribe(ctx)
}

func (s *reportingService) resubscribe(ctx context.Context) {
	delay := s.retryDelay
	if delay <= 0 {
		delay = defaultFeedRetryDelay
	}
	for {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		err := s.Start(ctx)
		if err == nil {
			return
		}
		s.LogWarn(ctx, "Ledger views resubscribe failed", slog.String("error", err.Error()), slog.Duration("retry_in", delay))
		delay *= 2
		if delay > maxFeedRetryDelay {
			delay = maxFeedRetryDelay
		}
	}
}

// GetLedgerViews returns the cached views, loading them once if nothing has been computed yet.
// Concurrent cold readers share a single load.
func (s *reportingService) GetLedgerViews(ctx context.Context) (*domain.LedgerViews, error) {
	s.mu.RLock()
	cached := s.views
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	resultChan := s.loads.DoChan(ledgerViewsKey, func() (interface{}, error) {
		return s.load(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			s.LogError(ctx, res.Err, "Failed to load ledger views", slog.Bool("shared", res.Shared))
			return nil, res.Err
		}
		return res.Val.(*domain.LedgerViews), nil
	}
}

func (s *reportingService) load(ctx context.Context) (*domain.LedgerViews, error) {
	txns, err := s.repo.ListTransactions(ctx, completedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	sales, err := s.repo.ListSales(ctx, domain.SaleFilter{Status: domain.SaleActive, PurchaseType: domain.PurchaseEmi})
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	views := accounting.BuildLedgerViews(txns, sales, s.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	// A feed update may have landed while we were loading; it is at least as fresh.
	if s.views != nil {
		return s.views, nil
	}
	if s.started {
		s.views = &views
	}
	return &views, nil
}
