package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/dealership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/utils/accounting"
)

var (
	ErrAlreadyReversed       = errors.New("transaction already reversed")
	ErrVehicleResold         = errors.New("vehicle from this purchase has been sold; reverse the sale first")
	ErrSaleHasPayments       = errors.New("sale has EMI payments; reverse them first")
	ErrLaterEmiPaymentsExist = errors.New("later EMI payments exist on this sale; reverse them first")
)

// reversalService undoes every effect a recorded transaction applied. The transaction is kept
// with status CANCELLED; balances are moved by the negation of its stored effects.
type reversalService struct {
	BaseService
	repo  portsrepo.LedgerRepositoryFacade
	guard portsrepo.ReversalGuard
}

// ReversalServiceOption is a function that configures a reversalService
type ReversalServiceOption func(*reversalService)

// WithReversalGuard rejects concurrent reversals of the same id before the atomic section.
func WithReversalGuard(guard portsrepo.ReversalGuard) ReversalServiceOption {
	return func(s *reversalService) {
		s.guard = guard
	}
}

// WithReversalClock overrides the time source.
func WithReversalClock(now func() time.Time) ReversalServiceOption {
	return func(s *reversalService) {
		s.Now = now
	}
}

// NewReversalService creates a new ReversalSvc.
func NewReversalService(repo portsrepo.LedgerRepositoryFacade, options ...ReversalServiceOption) portssvc.ReversalSvc {
	s := &reversalService{
		BaseService: newBaseService(),
		repo:        repo,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.ReversalSvc = (*reversalService)(nil)

// ReverseTransaction applies the inverse of everything recording the transaction did.
// A transaction can be reversed at most once; the second attempt fails with ErrConflict.
func (s *reversalService) ReverseTransaction(ctx context.Context, transactionID string, userID string) (*domain.ReversalResult, error) {
	if s.guard != nil {
		release, err := s.guard.Acquire(ctx, transactionID)
		if err != nil {
			s.LogWarn(ctx, "Reversal already in progress", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			return nil, err
		}
		defer release()
	}

	now := s.Now()
	var result domain.ReversalResult

	err := s.repo.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		// Reset so a retried closure never carries warnings from an aborted attempt.
		result = domain.ReversalResult{TransactionID: transactionID, ReversedAt: now}

		txn, err := tx.GetTransaction(ctx, transactionID)
		if err != nil {
			return err
		}
		if txn.IsReversed() {
			return fmt.Errorf("%w: %w: %s", apperrors.ErrConflict, ErrAlreadyReversed, transactionID)
		}
		result.Type = txn.Type

		switch txn.Type {
		case domain.TransactionPurchase:
			err = s.revertPurchase(ctx, tx, txn, &result)
		case domain.TransactionSale:
			err = s.revertSale(ctx, tx, txn, userID, now, &result)
		case domain.TransactionEmiPayment:
			err = s.revertEmiPayment(ctx, tx, txn, userID, now, &result)
		case domain.TransactionBrokerFee:
			// balances only
		default:
			err = fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrInternal, txn.Type)
		}
		if err != nil {
			return err
		}

		inverse := txn.Effects.Negate()
		if err := applyCapitalEffects(ctx, tx, inverse, domain.AdjustmentReversal, txn.TransactionID, s.NewID, userID, now); err != nil {
			return err
		}
		if !inverse.Person.IsZero() {
			if err := tx.AdjustPersonBalance(ctx, txn.PersonID, inverse.Person, userID, now); err != nil {
				if !errors.Is(err, apperrors.ErrNotFound) {
					return err
				}
				result.AddWarning(fmt.Sprintf("person %s no longer exists; person balance not restored", txn.PersonID))
			}
		}

		txn.Status = domain.StatusCancelled
		txn.ReversedAt = &now
		txn.ReversedBy = userID
		txn.Touch(userID, now)
		return tx.UpdateTransaction(ctx, *txn)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	if result.Partial {
		s.LogWarn(ctx, "Transaction partially reversed", slog.String("transaction_id", transactionID), slog.Any("warnings", result.Warnings))
	} else {
		s.LogInfo(ctx, "Transaction reversed", slog.String("transaction_id", transactionID), slog.String("type", string(result.Type)))
	}
	return &result, nil
}

// revertPurchase deletes the vehicle and purchase records a purchase created.
func (s *reversalService) revertPurchase(ctx context.Context, tx portsrepo.LedgerTx, txn *domain.PersonTransaction, result *domain.ReversalResult) error {
	purchase, err := tx.GetPurchase(ctx, txn.RelatedRef)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		result.AddWarning(fmt.Sprintf("purchase %s no longer exists", txn.RelatedRef))
		return nil
	}

	product, err := tx.GetProduct(ctx, purchase.ProductID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		result.AddWarning(fmt.Sprintf("vehicle %s no longer exists", purchase.ProductID))
	case err != nil:
		return err
	case product.Sold:
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrVehicleResold)
	default:
		if err := tx.DeleteProduct(ctx, product.ProductID); err != nil {
			return err
		}
	}

	return tx.DeletePurchase(ctx, purchase.PurchaseID)
}

// revertSale puts the vehicle back into stock and deletes the sale.
func (s *reversalService) revertSale(ctx context.Context, tx portsrepo.LedgerTx, txn *domain.PersonTransaction, userID string, now time.Time, result *domain.ReversalResult) error {
	sale, err := tx.GetSale(ctx, txn.RelatedRef)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		result.AddWarning(fmt.Sprintf("sale %s no longer exists", txn.RelatedRef))
		return nil
	}
	if sale.Emi != nil && sale.Emi.PaidInstallments > 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrSaleHasPayments)
	}

	product, err := tx.GetProduct(ctx, sale.VehicleID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		result.AddWarning(fmt.Sprintf("vehicle %s no longer exists", sale.VehicleID))
	case err != nil:
		return err
	case !product.Sold:
		result.AddWarning(fmt.Sprintf("vehicle %s was already marked unsold", sale.VehicleID))
	default:
		product.Sold = false
		product.Touch(userID, now)
		if err := tx.UpdateProduct(ctx, *product); err != nil {
			return err
		}
	}

	return tx.DeleteSale(ctx, sale.SaleID)
}

// revertEmiPayment restores the sale's EMI progress to what it was before the payment.
func (s *reversalService) revertEmiPayment(ctx context.Context, tx portsrepo.LedgerTx, txn *domain.PersonTransaction, userID string, now time.Time, result *domain.ReversalResult) error {
	sale, err := tx.GetSale(ctx, txn.RelatedRef)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		result.AddWarning(fmt.Sprintf("sale %s no longer exists; EMI counters not restored", txn.RelatedRef))
		return nil
	}
	if sale.Emi == nil {
		result.AddWarning(fmt.Sprintf("sale %s has no EMI plan; EMI counters not restored", sale.SaleID))
		return nil
	}

	if snap := txn.EmiProgress; snap != nil {
		if sale.Emi.PaidInstallments != snap.PaidInstallments+1 {
			if sale.Emi.PaidInstallments > snap.PaidInstallments+1 {
				return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrLaterEmiPaymentsExist)
			}
			result.AddWarning(fmt.Sprintf("sale %s EMI counters were modified since this payment", sale.SaleID))
		}
		sale.Emi.PaidInstallments = snap.PaidInstallments
		sale.Emi.RemainingInstallments = snap.RemainingInstallments
		sale.Emi.NextDueDate = snap.NextDueDate
		sale.Status = snap.SaleStatus
	} else {
		// No snapshot: step the counters back and rewind the date arithmetically.
		if sale.Emi.PaidInstallments == 0 {
			result.AddWarning(fmt.Sprintf("sale %s has no paid installments to restore", sale.SaleID))
			return nil
		}
		sale.Emi.PaidInstallments--
		sale.Emi.RemainingInstallments++
		sale.Emi.NextDueDate = accounting.SubtractPeriod(sale.Emi.NextDueDate, sale.Emi.Frequency)
		sale.Status = domain.SaleActive
		result.AddWarning(fmt.Sprintf("sale %s due date rewound without a stored snapshot", sale.SaleID))
	}

	sale.Touch(userID, now)
	return tx.UpdateSale(ctx, *sale)
}
