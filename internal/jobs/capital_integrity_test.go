package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/SscSPs/dealership_ledger/internal/jobs"
	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBalanceVerifier struct {
	mock.Mock
}

func (m *MockBalanceVerifier) VerifyBalances(ctx context.Context) ([]domain.CapitalDiscrepancy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CapitalDiscrepancy), args.Error(1)
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, nil)), buf
}

func integrityTask(t *testing.T) *asynq.Task {
	task, err := jobs.NewCapitalIntegrityTask(jobs.CapitalIntegrityPayload{Trigger: "cron", RequestedAt: time.Now().UTC()})
	require.NoError(t, err)
	return task
}

func TestCapitalIntegrityJob_Consistent(t *testing.T) {
	verifier := new(MockBalanceVerifier)
	verifier.On("VerifyBalances", mock.Anything).Return([]domain.CapitalDiscrepancy{}, nil).Once()
	logger, buf := newTestLogger()

	err := jobs.NewCapitalIntegrityJob(verifier, logger).Handle(context.Background(), integrityTask(t))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"discrepancies":0`)
	assert.NotContains(t, buf.String(), `"level":"ERROR"`)
	verifier.AssertExpectations(t)
}

func TestCapitalIntegrityJob_ReportsDiscrepancies(t *testing.T) {
	verifier := new(MockBalanceVerifier)
	verifier.On("VerifyBalances", mock.Anything).Return([]domain.CapitalDiscrepancy{
		{Type: domain.CapitalCash, Stored: decimal.RequireFromString("112.5"), Replayed: decimal.NewFromInt(100)},
	}, nil).Once()
	logger, buf := newTestLogger()

	err := jobs.NewCapitalIntegrityJob(verifier, logger).Handle(context.Background(), integrityTask(t))

	require.NoError(t, err, "discrepancies are reported, not retried")
	out := buf.String()
	assert.Contains(t, out, "capital balance disagrees with adjustment log")
	assert.Contains(t, out, `"type":"Cash"`)
	assert.Contains(t, out, `"difference":"12.5"`)
	assert.Contains(t, out, `"discrepancies":1`)
}

func TestCapitalIntegrityJob_StoreFailureIsRetried(t *testing.T) {
	verifier := new(MockBalanceVerifier)
	storeErr := errors.New("connection refused")
	verifier.On("VerifyBalances", mock.Anything).Return(nil, storeErr).Once()
	logger, _ := newTestLogger()

	err := jobs.NewCapitalIntegrityJob(verifier, logger).Handle(context.Background(), integrityTask(t))

	require.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestCapitalIntegrityJob_BadPayloadSkipsRetry(t *testing.T) {
	verifier := new(MockBalanceVerifier)
	logger, _ := newTestLogger()

	err := jobs.NewCapitalIntegrityJob(verifier, logger).Handle(context.Background(), asynq.NewTask(jobs.TaskCapitalIntegrity, []byte("{not json")))

	require.ErrorIs(t, err, asynq.SkipRetry)
	verifier.AssertNotCalled(t, "VerifyBalances", mock.Anything)
}

func TestCapitalIntegrityJob_EmptyPayloadAccepted(t *testing.T) {
	verifier := new(MockBalanceVerifier)
	verifier.On("VerifyBalances", mock.Anything).Return(nil, nil).Once()

	err := jobs.NewCapitalIntegrityJob(verifier, nil).Handle(context.Background(), asynq.NewTask(jobs.TaskCapitalIntegrity, nil))

	require.NoError(t, err)
}

func TestNewWorker_RejectsInvalidCron(t *testing.T) {
	mr := miniredis.RunT(t)
	logger, _ := newTestLogger()

	_, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: mr.Addr()},
		Logger:    logger,
		Cron:      []jobs.CronRegistration{{Spec: "every tuesday-ish", Task: integrityTask(t)}},
	})

	require.Error(t, err)
}

func TestNewWorker_RegistersCron(t *testing.T) {
	mr := miniredis.RunT(t)
	logger, buf := newTestLogger()
	job := jobs.NewCapitalIntegrityJob(new(MockBalanceVerifier), logger)

	w, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: mr.Addr()},
		Logger:    logger,
		Handlers:  []jobs.TaskHandler{{Type: jobs.TaskCapitalIntegrity, Handler: job.Handle}},
		Cron:      []jobs.CronRegistration{{Spec: "@every 1h", Task: integrityTask(t), Options: []asynq.Option{asynq.MaxRetry(3)}}},
	})

	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Contains(t, buf.String(), `"spec":"@every 1h"`)
}

func TestClient_EnqueueCapitalIntegrity(t *testing.T) {
	mr := miniredis.RunT(t)
	client := jobs.NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	info, err := client.EnqueueCapitalIntegrity(context.Background(), "startup")

	require.NoError(t, err)
	assert.Equal(t, jobs.TaskCapitalIntegrity, info.Type)
	assert.Equal(t, jobs.QueueDefault, info.Queue)
}
