package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/SscSPs/dealership_ledger/internal/utils/accounting"
	"github.com/SscSPs/dealership_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

var (
	ErrChassisExists     = errors.New("chassis number already registered")
	ErrVehicleSold       = errors.New("vehicle already sold")
	ErrNotEmiSale        = errors.New("sale is not an EMI sale")
	ErrSaleCompleted     = errors.New("sale has no remaining installments")
	ErrEmiNotComputable  = errors.New("EMI plan is not computable")
	ErrEmiPaymentMissing = errors.New("EMI payment must collect a positive amount")
)

// recorderService writes each ledger entry together with its domain record in one atomic unit.
type recorderService struct {
	BaseService
	repo portsrepo.LedgerRepositoryFacade
}

// RecorderServiceOption is a function that configures a recorderService
type RecorderServiceOption func(*recorderService)

// WithRecorderClock overrides the time source.
func WithRecorderClock(now func() time.Time) RecorderServiceOption {
	return func(s *recorderService) {
		s.Now = now
	}
}

// WithRecorderIDGenerator overrides id generation.
func WithRecorderIDGenerator(newID func() string) RecorderServiceOption {
	return func(s *recorderService) {
		s.NewID = newID
	}
}

// NewRecorderService creates a new RecorderSvcFacade.
func NewRecorderService(repo portsrepo.LedgerRepositoryFacade, options ...RecorderServiceOption) portssvc.RecorderSvcFacade {
	s := &recorderService{
		BaseService: newBaseService(),
		repo:        repo,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.RecorderSvcFacade = (*recorderService)(nil)

func splitOf(req dto.PaymentSplitRequest) accounting.PaymentSplit {
	return accounting.PaymentSplit{Cash: req.CashAmount, Bank: req.BankAmount, Credit: req.CreditAmount}
}

// newTransaction fills the fields every PersonTransaction shares.
func (s *recorderService) newTransaction(txnType domain.TransactionType, person *domain.Person, amount decimal.Decimal, split accounting.PaymentSplit, effects domain.BalanceEffects, date time.Time, userID string) domain.PersonTransaction {
	return domain.PersonTransaction{
		TransactionID:   s.NewID(),
		Type:            txnType,
		PersonID:        person.PersonID,
		PersonName:      person.Name,
		PersonType:      person.Type,
		Amount:          amount,
		CashAmount:      split.Cash,
		BankAmount:      split.Bank,
		CreditAmount:    split.Credit,
		PaymentMethod:   accounting.ResolvePaymentMethod(split),
		TransactionDate: date,
		Status:          domain.StatusCompleted,
		Effects:         effects,
		AuditFields:     domain.NewAuditFields(userID, s.Now()),
	}
}

// commit writes txn and moves capital and person balances by its effects.
func (s *recorderService) commit(ctx context.Context, tx portsrepo.LedgerTx, txn domain.PersonTransaction) error {
	if err := tx.InsertTransaction(ctx, txn); err != nil {
		return err
	}
	if err := applyCapitalEffects(ctx, tx, txn.Effects, domain.AdjustmentTransaction, txn.TransactionID, s.NewID, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}
	if !txn.Effects.Person.IsZero() {
		if err := tx.AdjustPersonBalance(ctx, txn.PersonID, txn.Effects.Person, txn.CreatedBy, txn.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

// RecordPurchase registers a bought vehicle, its purchase record and the PURCHASE transaction.
func (s *recorderService) RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest, userID string) (*domain.PersonTransaction, error) {
	split := splitOf(req.PaymentSplitRequest)
	if strings.TrimSpace(req.PersonID) == "" {
		return nil, fmt.Errorf("%w: personID is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Vehicle.ChassisNumber) == "" {
		return nil, fmt.Errorf("%w: chassis number is required", apperrors.ErrValidation)
	}
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}
	if err := accounting.ValidateSplit(req.TotalAmount, split); err != nil {
		return nil, err
	}
	effects, err := accounting.CalculateEffects(domain.TransactionPurchase, split, decimal.Zero)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	purchaseID := s.NewID()
	productID := s.NewID()
	price := req.Vehicle.Price
	if price.IsZero() {
		price = req.TotalAmount
	}

	var recorded domain.PersonTransaction
	err = s.repo.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		person, err := tx.GetPerson(ctx, req.PersonID)
		if err != nil {
			return err
		}
		exists, err := tx.ChassisExists(ctx, req.Vehicle.ChassisNumber)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %w: %s", apperrors.ErrConflict, ErrChassisExists, req.Vehicle.ChassisNumber)
		}

		if err := tx.InsertProduct(ctx, domain.Product{
			ProductID:     productID,
			ChassisNumber: req.Vehicle.ChassisNumber,
			Brand:         req.Vehicle.Brand,
			Model:         req.Vehicle.Model,
			Year:          req.Vehicle.Year,
			Price:         price,
			PurchaseRef:   purchaseID,
			AuditFields:   domain.NewAuditFields(userID, now),
		}); err != nil {
			return err
		}
		if err := tx.InsertPurchase(ctx, domain.Purchase{
			PurchaseID:   purchaseID,
			PersonID:     person.PersonID,
			ProductID:    productID,
			TotalAmount:  req.TotalAmount,
			CashAmount:   split.Cash,
			BankAmount:   split.Bank,
			CreditAmount: split.Credit,
			Attachments:  req.Attachments,
			PurchaseDate: req.PurchaseDate,
			AuditFields:  domain.NewAuditFields(userID, now),
		}); err != nil {
			return err
		}

		txn := s.newTransaction(domain.TransactionPurchase, person, req.TotalAmount, split, effects, req.PurchaseDate, userID)
		txn.RelatedRef = purchaseID
		txn.OrderNumber = req.OrderNumber
		txn.TransactionNumber = req.TransactionNumber
		txn.Description = req.Description
		if txn.Description == "" {
			txn.Description = fmt.Sprintf("Purchase of %s %s (%s)", req.Vehicle.Brand, req.Vehicle.Model, req.Vehicle.ChassisNumber)
		}
		txn.Note = req.Note
		if err := s.commit(ctx, tx, txn); err != nil {
			return err
		}
		recorded = txn
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record purchase", slog.String("person_id", req.PersonID), slog.String("chassis_number", req.Vehicle.ChassisNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Purchase recorded", slog.String("transaction_id", recorded.TransactionID), slog.String("purchase_id", purchaseID))
	return &recorded, nil
}

// RecordSale sells an inventory vehicle. FULL_PAYMENT sales complete immediately; EMI sales
// start Active with a plan computed from totalAmount minus the down payment.
func (s *recorderService) RecordSale(ctx context.Context, req dto.RecordSaleRequest, userID string) (*domain.PersonTransaction, *domain.VehicleSale, error) {
	split := splitOf(req.PaymentSplitRequest)
	if strings.TrimSpace(req.CustomerID) == "" || strings.TrimSpace(req.VehicleID) == "" {
		return nil, nil, fmt.Errorf("%w: customerID and vehicleID are required", apperrors.ErrValidation)
	}
	if !req.TotalAmount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	now := s.Now()
	saleID := s.NewID()
	sale := domain.VehicleSale{
		SaleID:          saleID,
		CustomerID:      req.CustomerID,
		VehicleID:       req.VehicleID,
		PurchaseType:    req.PurchaseType,
		TotalAmount:     req.TotalAmount,
		DownPaymentCash: split.Cash,
		DownPaymentBank: split.Bank,
		SaleDate:        req.SaleDate,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	var (
		amount          decimal.Decimal
		financedPayable = decimal.Zero
	)
	switch req.PurchaseType {
	case domain.PurchaseFullPayment:
		if err := accounting.ValidateSplit(req.TotalAmount, split); err != nil {
			return nil, nil, err
		}
		amount = req.TotalAmount
		sale.DownPayment = split.Cash.Add(split.Bank)
		sale.Status = domain.SaleCompleted
	case domain.PurchaseEmi:
		emi, err := s.planEmi(req, split)
		if err != nil {
			return nil, nil, err
		}
		amount = split.Cash.Add(split.Bank)
		sale.DownPayment = amount
		sale.Status = domain.SaleActive
		sale.Emi = emi
		financedPayable = emi.TotalPayable()
	default:
		return nil, nil, fmt.Errorf("%w: unknown purchase type %q", apperrors.ErrValidation, req.PurchaseType)
	}

	effects, err := accounting.CalculateEffects(domain.TransactionSale, split, financedPayable)
	if err != nil {
		return nil, nil, err
	}

	var recorded domain.PersonTransaction
	err = s.repo.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		person, err := tx.GetPerson(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		product, err := tx.GetProduct(ctx, req.VehicleID)
		if err != nil {
			return err
		}
		if product.Sold {
			return fmt.Errorf("%w: %w: %s", apperrors.ErrConflict, ErrVehicleSold, product.ProductID)
		}
		product.Sold = true
		product.Touch(userID, now)
		if err := tx.UpdateProduct(ctx, *product); err != nil {
			return err
		}
		if err := tx.InsertSale(ctx, sale); err != nil {
			return err
		}

		txn := s.newTransaction(domain.TransactionSale, person, amount, split, effects, req.SaleDate, userID)
		txn.RelatedRef = saleID
		txn.OrderNumber = req.OrderNumber
		txn.TransactionNumber = req.TransactionNumber
		txn.Description = req.Description
		if txn.Description == "" {
			txn.Description = fmt.Sprintf("Sale of %s %s (%s)", product.Brand, product.Model, product.ChassisNumber)
		}
		txn.Note = req.Note
		if err := s.commit(ctx, tx, txn); err != nil {
			return err
		}
		recorded = txn
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record sale", slog.String("customer_id", req.CustomerID), slog.String("vehicle_id", req.VehicleID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Sale recorded", slog.String("transaction_id", recorded.TransactionID), slog.String("sale_id", saleID), slog.String("purchase_type", string(req.PurchaseType)))
	return &recorded, &sale, nil
}

// planEmi validates the down payment and builds the installment plan of an EMI sale.
func (s *recorderService) planEmi(req dto.RecordSaleRequest, split accounting.PaymentSplit) (*domain.EmiDetails, error) {
	if req.Emi == nil {
		return nil, fmt.Errorf("%w: EMI sale requires an EMI plan", apperrors.ErrValidation)
	}
	if split.Cash.IsNegative() || split.Bank.IsNegative() {
		return nil, fmt.Errorf("%w: down payment amounts must not be negative", apperrors.ErrValidation)
	}
	if !split.Credit.IsZero() {
		return nil, fmt.Errorf("%w: EMI sales take no credit part, the financed amount is the plan", apperrors.ErrValidation)
	}
	principal := req.TotalAmount.Sub(split.Cash).Sub(split.Bank)
	if !principal.IsPositive() {
		return nil, fmt.Errorf("%w: down payment covers the total amount, record a FULL_PAYMENT sale instead", apperrors.ErrValidation)
	}
	quote, err := accounting.CalculateEmi(principal, req.Emi.InterestRate, req.Emi.DurationMonths, req.Emi.Frequency)
	if err != nil {
		return nil, err
	}
	if !quote.Computable() {
		return nil, fmt.Errorf("%w: %w: %d months is shorter than one %s period", apperrors.ErrValidation, ErrEmiNotComputable, req.Emi.DurationMonths, req.Emi.Frequency)
	}
	return &domain.EmiDetails{
		InterestRate:          req.Emi.InterestRate,
		Frequency:             req.Emi.Frequency,
		DurationMonths:        req.Emi.DurationMonths,
		InstallmentsCount:     quote.Periods,
		InstallmentAmount:     quote.InstallmentAmount,
		NextDueDate:           accounting.AddPeriod(req.SaleDate, req.Emi.Frequency),
		RemainingInstallments: quote.Periods,
		PaidInstallments:      0,
	}, nil
}

// RecordEmiPayment collects one installment. The final installment completes the sale in
// the same atomic write.
func (s *recorderService) RecordEmiPayment(ctx context.Context, saleID string, req dto.RecordEmiPaymentRequest, userID string) (*domain.PersonTransaction, error) {
	split := accounting.PaymentSplit{Cash: req.CashAmount, Bank: req.BankAmount, Credit: decimal.Zero}
	if split.Cash.IsNegative() || split.Bank.IsNegative() {
		return nil, fmt.Errorf("%w: cash and bank amounts must not be negative", apperrors.ErrValidation)
	}
	amount := split.Total()
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEmiPaymentMissing)
	}
	effects, err := accounting.CalculateEffects(domain.TransactionEmiPayment, split, decimal.Zero)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var recorded domain.PersonTransaction
	err = s.repo.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		sale, err := tx.GetSale(ctx, saleID)
		if err != nil {
			return err
		}
		if !sale.IsEmi() {
			return fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrNotEmiSale, saleID)
		}
		if sale.EmiState() != domain.EmiInProgress {
			return fmt.Errorf("%w: %w: %s", apperrors.ErrConflict, ErrSaleCompleted, saleID)
		}
		person, err := tx.GetPerson(ctx, sale.CustomerID)
		if err != nil {
			return err
		}

		snapshot := sale.Snapshot()
		sale.Emi.PaidInstallments++
		sale.Emi.RemainingInstallments--
		sale.Emi.NextDueDate = accounting.AddPeriod(sale.Emi.NextDueDate, sale.Emi.Frequency)
		if sale.EmiState() == domain.EmiCompletePendingTransition {
			sale.Status = domain.SaleCompleted
		}
		if !sale.Emi.CountersConsistent() {
			return fmt.Errorf("%w: installment counters of sale %s are inconsistent", apperrors.ErrInternal, saleID)
		}
		sale.Touch(userID, now)
		if err := tx.UpdateSale(ctx, *sale); err != nil {
			return err
		}

		txn := s.newTransaction(domain.TransactionEmiPayment, person, amount, split, effects, req.PaymentDate, userID)
		txn.RelatedRef = saleID
		txn.TransactionNumber = req.TransactionNumber
		txn.Description = fmt.Sprintf("EMI installment %d of %d", sale.Emi.PaidInstallments, sale.Emi.InstallmentsCount)
		txn.Note = req.Note
		txn.EmiProgress = snapshot
		if err := s.commit(ctx, tx, txn); err != nil {
			return err
		}
		recorded = txn
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record EMI payment", slog.String("sale_id", saleID))
		return nil, err
	}

	s.LogInfo(ctx, "EMI payment recorded", slog.String("transaction_id", recorded.TransactionID), slog.String("sale_id", saleID))
	return &recorded, nil
}

// RecordBrokerFee records a fee paid to a broker or middle man.
func (s *recorderService) RecordBrokerFee(ctx context.Context, req dto.RecordBrokerFeeRequest, userID string) (*domain.PersonTransaction, error) {
	split := splitOf(req.PaymentSplitRequest)
	if strings.TrimSpace(req.PersonID) == "" {
		return nil, fmt.Errorf("%w: personID is required", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if err := accounting.ValidateSplit(req.Amount, split); err != nil {
		return nil, err
	}
	effects, err := accounting.CalculateEffects(domain.TransactionBrokerFee, split, decimal.Zero)
	if err != nil {
		return nil, err
	}

	var recorded domain.PersonTransaction
	err = s.repo.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		person, err := tx.GetPerson(ctx, req.PersonID)
		if err != nil {
			return err
		}
		txn := s.newTransaction(domain.TransactionBrokerFee, person, req.Amount, split, effects, req.FeeDate, userID)
		txn.RelatedRef = req.RelatedRef
		txn.TransactionNumber = req.TransactionNumber
		txn.Description = req.Description
		if txn.Description == "" {
			txn.Description = fmt.Sprintf("Broker fee paid to %s", person.Name)
		}
		txn.Note = req.Note
		if err := s.commit(ctx, tx, txn); err != nil {
			return err
		}
		recorded = txn
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record broker fee", slog.String("person_id", req.PersonID))
		return nil, err
	}

	s.LogInfo(ctx, "Broker fee recorded", slog.String("transaction_id", recorded.TransactionID))
	return &recorded, nil
}

// GetTransaction retrieves one ledger entry.
func (s *recorderService) GetTransaction(ctx context.Context, transactionID string) (*domain.PersonTransaction, error) {
	txn, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// GetSale retrieves one sale with its EMI progress.
func (s *recorderService) GetSale(ctx context.Context, saleID string) (*domain.VehicleSale, error) {
	sale, err := s.repo.FindSaleByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("sale %s: %w", saleID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to get sale", slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return sale, nil
}

// ListTransactions returns one page of transactions in (date, createdAt, id) order.
func (s *recorderService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	var after *pagination.Cursor
	if params.NextToken != nil && *params.NextToken != "" {
		cursor, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		after = &cursor
	}

	// One extra row tells us whether another page exists.
	txns, err := s.repo.ListTransactionsPage(ctx, params.Filter(), after, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var nextToken *string
	page := txns
	if len(txns) > limit {
		page = txns[:limit]
		last := page[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.TransactionDate, CreatedAt: last.CreatedAt, ID: last.TransactionID})
		nextToken = &token
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(page),
		NextToken:    nextToken,
	}, nil
}

// PreviewEmi computes an installment plan without recording anything.
func (s *recorderService) PreviewEmi(ctx context.Context, req dto.EmiPreviewRequest) (*dto.EmiPreviewResponse, error) {
	if req.DownPayment.IsNegative() {
		return nil, fmt.Errorf("%w: down payment must not be negative", apperrors.ErrValidation)
	}
	principal := req.TotalAmount.Sub(req.DownPayment)
	quote, err := accounting.CalculateEmi(principal, req.InterestRate, req.DurationMonths, req.Frequency)
	if err != nil {
		return nil, err
	}

	resp := &dto.EmiPreviewResponse{
		Principal:         principal,
		Computable:        quote.Computable(),
		Periods:           quote.Periods,
		TotalInterest:     quote.TotalInterest,
		TotalAmount:       quote.TotalAmount,
		InstallmentAmount: quote.InstallmentAmount,
	}
	if quote.Computable() {
		start := s.Now()
		if req.StartDate != nil {
			start = *req.StartDate
		}
		due := accounting.AddPeriod(start, req.Frequency)
		resp.FirstDueDate = &due
	}
	return resp, nil
}
