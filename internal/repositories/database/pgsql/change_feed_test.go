package pgsql

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/SscSPs/dealership_ledger/internal/middleware"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedWait replays notifications, then fails with end.
func scriptedWait(end error, payloads ...string) waitFunc {
	i := 0
	return func(ctx context.Context) (*pgconn.Notification, error) {
		if i >= len(payloads) {
			return nil, end
		}
		i++
		return &pgconn.Notification{Channel: ledgerChannel, Payload: payloads[i-1]}, nil
	}
}

func bufferedLogger() (*bytes.Buffer, context.Context) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	return &buf, middleware.WithLogger(context.Background(), logger)
}

func TestPump_ReloadsOnlyForItsTable(t *testing.T) {
	loads := 0
	load := func(context.Context) ([]int, error) {
		loads++
		return []int{loads}, nil
	}
	ch := make(chan []int, 1)

	pump(context.Background(), scriptedWait(context.Canceled, "vehicle_sales", "person_transactions", "vehicle_sales"), "person_transactions", load, ch)

	assert.Equal(t, 1, loads)
	require.Len(t, ch, 1)
	assert.Equal(t, []int{1}, <-ch)
}

func TestPump_LatestSnapshotWins(t *testing.T) {
	loads := 0
	load := func(context.Context) ([]int, error) {
		loads++
		return []int{loads}, nil
	}
	ch := make(chan []int, 1)

	pump(context.Background(), scriptedWait(context.Canceled, "t", "t", "t"), "t", load, ch)

	require.Len(t, ch, 1)
	assert.Equal(t, []int{3}, <-ch)
}

func TestPump_ConnectionLossIsLoggedThroughContextLogger(t *testing.T) {
	buf, ctx := bufferedLogger()
	ch := make(chan []int, 1)

	pump(ctx, scriptedWait(errors.New("conn reset by peer")), "person_transactions", func(context.Context) ([]int, error) { return nil, nil }, ch)

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, "Ledger change feed stopped")
	assert.Contains(t, out, "conn reset by peer")
	assert.Contains(t, out, `"table":"person_transactions"`)
}

func TestPump_CancellationIsQuiet(t *testing.T) {
	buf, ctx := bufferedLogger()
	ch := make(chan []int, 1)

	pump(ctx, scriptedWait(context.Canceled), "t", func(context.Context) ([]int, error) { return nil, nil }, ch)

	assert.Empty(t, buf.String())
}

func TestPump_ReloadFailureKeepsListening(t *testing.T) {
	buf, ctx := bufferedLogger()
	calls := 0
	load := func(context.Context) ([]int, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("statement timeout")
		}
		return []int{calls}, nil
	}
	ch := make(chan []int, 1)

	pump(ctx, scriptedWait(context.Canceled, "t", "t"), "t", load, ch)

	assert.Contains(t, buf.String(), "Failed to reload ledger snapshot")
	require.Len(t, ch, 1)
	assert.Equal(t, []int{2}, <-ch)
}
