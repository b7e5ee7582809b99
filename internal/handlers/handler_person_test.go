package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock PersonService ---
type MockPersonService struct {
	mock.Mock
}

func (m *MockPersonService) CreatePerson(ctx context.Context, req dto.CreatePersonRequest, creatorUserID string) (*domain.Person, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonService) GetPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonService) ListPersons(ctx context.Context, params dto.ListPersonsParams) ([]domain.Person, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Person), args.Error(1)
}

func (m *MockPersonService) UpdatePerson(ctx context.Context, personID string, req dto.UpdatePersonRequest, requestingUserID string) (*domain.Person, error) {
	args := m.Called(ctx, personID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

var _ portssvc.PersonSvcFacade = (*MockPersonService)(nil)

func testPerson(id string, balance string) *domain.Person {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return &domain.Person{
		PersonID:    id,
		Name:        "Anita",
		Type:        domain.PersonCustomer,
		Balance:     decimal.RequireFromString(balance),
		AuditFields: domain.NewAuditFields("user-1", now),
	}
}

func (suite *LedgerHandlerTestSuite) TestCreatePerson_Success() {
	req := dto.CreatePersonRequest{Name: "Anita", Type: domain.PersonCustomer, Phone: "98450"}
	suite.persons.On("CreatePerson", mock.Anything, req, suite.testUserID).Return(testPerson("person-9", "0"), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/persons", map[string]any{"name": "Anita", "type": "CUSTOMER", "phone": "98450"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PersonResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("person-9", resp.PersonID)
	suite.True(resp.Balance.IsZero())
}

func (suite *LedgerHandlerTestSuite) TestCreatePerson_UnknownTypeRejected() {
	w := suite.do(http.MethodPost, "/api/v1/persons", map[string]any{"name": "Anita", "type": "SUPPLIER"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(errorBody(suite.T(), w), "oneof")
}

func (suite *LedgerHandlerTestSuite) TestListPersons_AppliesDefaults() {
	params := dto.ListPersonsParams{Type: domain.PersonBroker, Limit: 50, Offset: 0}
	suite.persons.On("ListPersons", mock.Anything, params).Return([]domain.Person{*testPerson("p-1", "-2500")}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/persons?type=BROKER", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListPersonsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Persons, 1)
	suite.True(resp.Persons[0].Balance.Equal(decimal.NewFromInt(-2500)))
}

func (suite *LedgerHandlerTestSuite) TestGetPerson_NotFound() {
	suite.persons.On("GetPersonByID", mock.Anything, "missing").
		Return(nil, fmt.Errorf("failed to get person missing: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/persons/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestUpdatePerson_Success() {
	name := "Anita Rao"
	req := dto.UpdatePersonRequest{Name: &name}
	updated := testPerson("person-9", "0")
	updated.Name = name
	suite.persons.On("UpdatePerson", mock.Anything, "person-9", req, suite.testUserID).Return(updated, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/persons/person-9", map[string]any{"name": name})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PersonResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(name, resp.Name)
}
