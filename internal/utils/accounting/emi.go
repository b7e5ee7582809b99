package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MoneyScale is the number of decimal places money columns keep in storage.
const MoneyScale = 4

// EmiQuote is the result of an installment calculation.
type EmiQuote struct {
	Periods           int             `json:"periods"`
	TotalInterest     decimal.Decimal `json:"totalInterest"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
}

// Computable reports whether the quote describes a usable plan.
func (q EmiQuote) Computable() bool {
	return q.Periods > 0 && q.InstallmentAmount.IsPositive()
}

// CalculateEmi computes a simple-interest installment plan.
//
// periods = floor(durationMonths / frequency months); the rate is applied once per period
// on the full principal. A duration that is not a multiple of the frequency drops the
// remainder (10 months quarterly is 3 periods). A non-positive principal or zero periods
// yields an empty quote, not an error. The installment is rounded half away from zero to
// MoneyScale places so every store holds the same value.
func CalculateEmi(principal, ratePercent decimal.Decimal, durationMonths int, frequency domain.EmiFrequency) (EmiQuote, error) {
	if ratePercent.IsNegative() {
		return EmiQuote{}, fmt.Errorf("%w: interest rate must not be negative, got %s", apperrors.ErrValidation, ratePercent)
	}
	multiplier := frequency.Months()
	if multiplier == 0 {
		return EmiQuote{}, fmt.Errorf("%w: unknown EMI frequency %q", apperrors.ErrValidation, frequency)
	}
	if !principal.IsPositive() {
		return EmiQuote{}, nil
	}
	periods := durationMonths / multiplier
	if periods <= 0 {
		return EmiQuote{}, nil
	}

	n := decimal.NewFromInt(int64(periods))
	totalInterest := principal.Mul(ratePercent.Div(hundred)).Mul(n)
	totalAmount := principal.Add(totalInterest)

	return EmiQuote{
		Periods:           periods,
		TotalInterest:     totalInterest,
		TotalAmount:       totalAmount,
		InstallmentAmount: totalAmount.Div(n).Round(MoneyScale),
	}, nil
}

// AddPeriod moves t forward by one installment period using calendar months.
// Days past the end of the target month are clamped (Jan 31 + 1 month = Feb 28/29).
func AddPeriod(t time.Time, frequency domain.EmiFrequency) time.Time {
	return addMonthsClamped(t, frequency.Months())
}

// SubtractPeriod moves t back by one installment period with the same clamping as AddPeriod.
// Because of clamping it is not always the exact inverse of AddPeriod; callers that must
// restore a date exactly keep the previous value instead.
func SubtractPeriod(t time.Time, frequency domain.EmiFrequency) time.Time {
	return addMonthsClamped(t, -frequency.Months())
}

func addMonthsClamped(t time.Time, months int) time.Time {
	if months == 0 {
		return t
	}
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, hour, minute, sec, t.Nanosecond(), t.Location())
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
