package accounting

import (
	"fmt"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SplitTolerance is the maximum allowed gap between a declared amount and its payment split.
var SplitTolerance = decimal.NewFromFloat(0.01)

// PaymentSplit is how an amount is divided between cash, bank and credit.
type PaymentSplit struct {
	Cash   decimal.Decimal
	Bank   decimal.Decimal
	Credit decimal.Decimal
}

// Total returns cash + bank + credit.
func (p PaymentSplit) Total() decimal.Decimal {
	return p.Cash.Add(p.Bank).Add(p.Credit)
}

// ValidateSplit checks that every part is non-negative and that the parts add up to amount
// within SplitTolerance.
func ValidateSplit(amount decimal.Decimal, split PaymentSplit) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if split.Cash.IsNegative() || split.Bank.IsNegative() || split.Credit.IsNegative() {
		return fmt.Errorf("%w: cash, bank and credit amounts must not be negative", apperrors.ErrValidation)
	}
	if diff := split.Total().Sub(amount).Abs(); diff.GreaterThan(SplitTolerance) {
		return fmt.Errorf("%w: cash %s + bank %s + credit %s does not equal amount %s",
			apperrors.ErrValidation, split.Cash, split.Bank, split.Credit, amount)
	}
	return nil
}

// ResolvePaymentMethod derives the payment method from the split: a single non-zero part
// names its method, anything else is MIXED.
func ResolvePaymentMethod(split PaymentSplit) domain.PaymentMethod {
	var methods []domain.PaymentMethod
	if split.Cash.IsPositive() {
		methods = append(methods, domain.PaymentCash)
	}
	if split.Bank.IsPositive() {
		methods = append(methods, domain.PaymentBank)
	}
	if split.Credit.IsPositive() {
		methods = append(methods, domain.PaymentCredit)
	}
	if len(methods) == 1 {
		return methods[0]
	}
	if len(methods) == 0 {
		return domain.PaymentCash
	}
	return domain.PaymentMixed
}

// CalculateEffects returns the signed balance deltas a transaction of the given type applies.
//
// Outflows (PURCHASE, BROKER_FEE) decrease Cash/Bank and increase Credit owed, and the
// credit part is owed to the person. Inflows (SALE, EMI_PAYMENT) increase Cash/Bank; for a
// sale the credit part and the financed payable are owed by the customer, and an EMI payment
// settles what it collects.
func CalculateEffects(txnType domain.TransactionType, split PaymentSplit, financedPayable decimal.Decimal) (domain.BalanceEffects, error) {
	switch txnType {
	case domain.TransactionPurchase, domain.TransactionBrokerFee:
		return domain.BalanceEffects{
			Cash:   split.Cash.Neg(),
			Bank:   split.Bank.Neg(),
			Credit: split.Credit,
			Person: split.Credit,
		}, nil
	case domain.TransactionSale:
		return domain.BalanceEffects{
			Cash:   split.Cash,
			Bank:   split.Bank,
			Credit: decimal.Zero,
			Person: split.Credit.Add(financedPayable).Neg(),
		}, nil
	case domain.TransactionEmiPayment:
		return domain.BalanceEffects{
			Cash:   split.Cash,
			Bank:   split.Bank,
			Credit: decimal.Zero,
			Person: split.Cash.Add(split.Bank),
		}, nil
	default:
		return domain.BalanceEffects{}, fmt.Errorf("unknown transaction type '%s'", txnType)
	}
}
