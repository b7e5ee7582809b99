package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/SscSPs/dealership_ledger/internal/core/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/SscSPs/dealership_ledger/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := services.NewPersonService(store,
		services.WithPersonClock(func() time.Time { return fixedNow }),
		services.WithPersonIDs(sequentialIDs()))

	created, err := svc.CreatePerson(ctx, dto.CreatePersonRequest{Name: "  Ravi ", Type: domain.PersonBroker}, userID)
	require.NoError(t, err)
	assert.Equal(t, "id-0001", created.PersonID)
	assert.Equal(t, "Ravi", created.Name)
	assert.True(t, created.Balance.IsZero())
	assert.Equal(t, fixedNow, created.CreatedAt)

	got, err := svc.GetPersonByID(ctx, created.PersonID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, domain.PersonBroker, got.Type)
}

func TestPersonService_CreateValidation(t *testing.T) {
	svc := services.NewPersonService(memory.NewStore())

	_, err := svc.CreatePerson(context.Background(), dto.CreatePersonRequest{Name: "   ", Type: domain.PersonCustomer}, userID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreatePerson(context.Background(), dto.CreatePersonRequest{Name: "Ravi", Type: "SUPPLIER"}, userID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPersonService_ListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	svc := services.NewPersonService(memory.NewStore(memory.WithPersons(seedPersons()...)))

	all, err := svc.ListPersons(ctx, dto.ListPersonsParams{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Anita", "Kiran", "Suresh"}, []string{all[0].Name, all[1].Name, all[2].Name})

	brokers, err := svc.ListPersons(ctx, dto.ListPersonsParams{Type: domain.PersonBroker})
	require.NoError(t, err)
	require.Len(t, brokers, 1)
	assert.Equal(t, brokerID, brokers[0].PersonID)

	page, err := svc.ListPersons(ctx, dto.ListPersonsParams{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, sellerID, page[0].PersonID)

	_, err = svc.ListPersons(ctx, dto.ListPersonsParams{Type: "SUPPLIER"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPersonService_UpdateKeepsBalance(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	_, err := l.recorder.RecordPurchase(ctx, purchaseRequest("CH-P1", "0", "0", "7000"), userID)
	require.NoError(t, err)

	later := fixedNow.Add(time.Hour)
	svc := services.NewPersonService(l.store, services.WithPersonClock(func() time.Time { return later }))
	name := "Suresh K"
	updated, err := svc.UpdatePerson(ctx, sellerID, dto.UpdatePersonRequest{Name: &name}, "user-2")
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, later, updated.LastUpdatedAt)

	stored, err := svc.GetPersonByID(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, name, stored.Name)
	assert.Equal(t, "user-2", stored.LastUpdatedBy)
	assert.True(t, stored.Balance.Equal(d("7000")), "balance %s", stored.Balance)
}

func TestPersonService_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	svc := services.NewPersonService(memory.NewStore(memory.WithPersons(seedPersons()...)))

	blank := " "
	_, err := svc.UpdatePerson(ctx, customerID, dto.UpdatePersonRequest{Name: &blank}, userID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	name := "Someone"
	_, err = svc.UpdatePerson(ctx, "missing", dto.UpdatePersonRequest{Name: &name}, userID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
