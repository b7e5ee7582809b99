package services

import (
	"context"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/SscSPs/dealership_ledger/internal/dto"
)

// TransactionRecorderSvc creates ledger entries together with their domain records, atomically.
type TransactionRecorderSvc interface {
	// RecordPurchase registers a bought vehicle, its purchase record and the PURCHASE transaction.
	RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest, userID string) (*domain.PersonTransaction, error)

	// RecordSale marks a vehicle sold, creates the sale (with its EMI plan) and the SALE transaction.
	RecordSale(ctx context.Context, req dto.RecordSaleRequest, userID string) (*domain.PersonTransaction, *domain.VehicleSale, error)

	// RecordEmiPayment collects one installment of an EMI sale.
	RecordEmiPayment(ctx context.Context, saleID string, req dto.RecordEmiPaymentRequest, userID string) (*domain.PersonTransaction, error)

	// RecordBrokerFee records a fee paid to a broker or middle man.
	RecordBrokerFee(ctx context.Context, req dto.RecordBrokerFeeRequest, userID string) (*domain.PersonTransaction, error)
}

// TransactionReaderSvc defines read operations for ledger entries.
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, transactionID string) (*domain.PersonTransaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	GetSale(ctx context.Context, saleID string) (*domain.VehicleSale, error)
}

// EmiCalculatorSvc exposes the pure installment calculation.
type EmiCalculatorSvc interface {
	PreviewEmi(ctx context.Context, req dto.EmiPreviewRequest) (*dto.EmiPreviewResponse, error)
}

// RecorderSvcFacade combines recording, reading and EMI preview.
type RecorderSvcFacade interface {
	TransactionRecorderSvc
	TransactionReaderSvc
	EmiCalculatorSvc
}

// ReversalSvc undoes every effect of a recorded transaction.
type ReversalSvc interface {
	ReverseTransaction(ctx context.Context, transactionID string, userID string) (*domain.ReversalResult, error)
}

// CapitalSvc manages the Cash, Bank and Credit running balances.
type CapitalSvc interface {
	GetBalances(ctx context.Context) ([]domain.CapitalBalance, error)
	AdjustBalance(ctx context.Context, req dto.AdjustCapitalRequest, userID string) (*domain.CapitalBalance, error)
	SetBalance(ctx context.Context, capitalType domain.CapitalType, req dto.SetCapitalRequest, userID string) (*domain.CapitalBalance, error)
	ListAdjustments(ctx context.Context) ([]domain.CapitalAdjustment, error)
	// VerifyBalances replays the adjustment log and returns every balance that disagrees with it.
	VerifyBalances(ctx context.Context) ([]domain.CapitalDiscrepancy, error)
}
