package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/hibiken/asynq"
)

// BalanceVerifier is the part of the capital service the integrity job needs.
type BalanceVerifier interface {
	VerifyBalances(ctx context.Context) ([]domain.CapitalDiscrepancy, error)
}

// CapitalIntegrityJob checks that every capital balance equals the replay of its adjustment log.
type CapitalIntegrityJob struct {
	verifier BalanceVerifier
	logger   *slog.Logger
	clock    func() time.Time
}

// NewCapitalIntegrityJob initialises the integrity handler.
func NewCapitalIntegrityJob(verifier BalanceVerifier, logger *slog.Logger) *CapitalIntegrityJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &CapitalIntegrityJob{
		verifier: verifier,
		logger:   logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle runs one integrity check. Discrepancies are reported, not retried; a failing
// store read is returned so asynq retries the task.
func (j *CapitalIntegrityJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.verifier == nil {
		return errors.New("capital integrity: handler not configured")
	}
	var payload CapitalIntegrityPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("capital integrity: decode payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	start := j.clock()
	logger := j.logger.With(slog.String("task", TaskCapitalIntegrity), slog.String("trigger", payload.Trigger))
	logger.Info("starting capital integrity check")

	discrepancies, err := j.verifier.VerifyBalances(ctx)
	if err != nil {
		logger.Error("capital integrity check failed", slog.String("error", err.Error()))
		return err
	}

	for _, d := range discrepancies {
		logger.Error("capital balance disagrees with adjustment log",
			slog.String("type", string(d.Type)),
			slog.String("stored", d.Stored.String()),
			slog.String("replayed", d.Replayed.String()),
			slog.String("difference", d.Stored.Sub(d.Replayed).String()),
		)
	}

	logger.Info("completed capital integrity check",
		slog.Int("discrepancies", len(discrepancies)),
		slog.Duration("duration", j.clock().Sub(start)),
	)
	return nil
}
