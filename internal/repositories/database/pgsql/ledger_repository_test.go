package pgsql

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/SscSPs/dealership_ledger/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
)

func TestTransactionQuery_FullListingHasNoLimit(t *testing.T) {
	query, args := transactionQuery(domain.TransactionFilter{}, nil, 0)

	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "LIMIT")
	assert.True(t, strings.HasSuffix(query, "ORDER BY transaction_date, created_at, transaction_id"))
	assert.Empty(t, args)
}

func TestTransactionQuery_PushesCursorAndLimit(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	created := date.Add(time.Hour)
	after := &pagination.Cursor{Date: date, CreatedAt: created, ID: "txn-9"}

	query, args := transactionQuery(domain.TransactionFilter{}, after, 26)

	assert.Contains(t, query, " WHERE (transaction_date, created_at, transaction_id) > ($1, $2, $3) ORDER BY")
	assert.True(t, strings.HasSuffix(query, " LIMIT $4"))
	assert.Equal(t, []any{date, created, "txn-9", 26}, args)
}

func TestTransactionQuery_CursorFollowsFilterPlaceholders(t *testing.T) {
	after := &pagination.Cursor{ID: "txn-1"}
	filter := domain.TransactionFilter{
		Statuses: []domain.TransactionStatus{domain.StatusCompleted},
		PersonID: "person-1",
	}

	query, args := transactionQuery(filter, after, 10)

	assert.Contains(t, query, "status = ANY($1) AND person_id = $2 AND (transaction_date, created_at, transaction_id) > ($3, $4, $5)")
	assert.True(t, strings.HasSuffix(query, " LIMIT $6"))
	assert.Len(t, args, 6)
	assert.Equal(t, 10, args[5])
}
