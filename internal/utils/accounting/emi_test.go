package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEmi(t *testing.T) {
	tests := []struct {
		name            string
		principal       decimal.Decimal
		rate            decimal.Decimal
		months          int
		frequency       domain.EmiFrequency
		wantPeriods     int
		wantInterest    string
		wantTotal       string
		wantInstallment string
	}{
		{
			name:            "monthly twelve months",
			principal:       decimal.NewFromInt(90000),
			rate:            decimal.NewFromInt(12),
			months:          12,
			frequency:       domain.FrequencyMonthly,
			wantPeriods:     12,
			wantInterest:    "129600",
			wantTotal:       "219600",
			wantInstallment: "18300",
		},
		{
			name:            "quarterly drops the partial period",
			principal:       decimal.NewFromInt(30000),
			rate:            decimal.NewFromInt(5),
			months:          10,
			frequency:       domain.FrequencyQuarterly,
			wantPeriods:     3,
			wantInterest:    "4500",
			wantTotal:       "34500",
			wantInstallment: "11500",
		},
		{
			name:            "zero interest divides principal",
			principal:       decimal.NewFromInt(60000),
			rate:            decimal.Zero,
			months:          24,
			frequency:       domain.FrequencySemiAnnually,
			wantPeriods:     4,
			wantInterest:    "0",
			wantTotal:       "60000",
			wantInstallment: "15000",
		},
		{
			name:            "yearly",
			principal:       decimal.NewFromInt(100000),
			rate:            decimal.NewFromFloat(7.5),
			months:          36,
			frequency:       domain.FrequencyYearly,
			wantPeriods:     3,
			wantInterest:    "22500",
			wantTotal:       "122500",
			wantInstallment: "40833.3333",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := CalculateEmi(tt.principal, tt.rate, tt.months, tt.frequency)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPeriods, quote.Periods)
			assert.True(t, quote.TotalInterest.Equal(decimal.RequireFromString(tt.wantInterest)), "interest %s", quote.TotalInterest)
			assert.True(t, quote.TotalAmount.Equal(decimal.RequireFromString(tt.wantTotal)), "total %s", quote.TotalAmount)
			assert.True(t, quote.InstallmentAmount.Equal(decimal.RequireFromString(tt.wantInstallment)), "installment %s", quote.InstallmentAmount)
			assert.True(t, quote.Computable())
		})
	}
}

func TestCalculateEmi_InstallmentKeepsStoredScale(t *testing.T) {
	quote, err := CalculateEmi(decimal.NewFromInt(100000), decimal.Zero, 3, domain.FrequencyMonthly)
	require.NoError(t, err)
	assert.Equal(t, "33333.3333", quote.InstallmentAmount.String())
	assert.LessOrEqual(t, -quote.InstallmentAmount.Exponent(), int32(MoneyScale))

	quote, err = CalculateEmi(decimal.NewFromInt(200000), decimal.Zero, 3, domain.FrequencyMonthly)
	require.NoError(t, err)
	assert.Equal(t, "66666.6667", quote.InstallmentAmount.String())

	emi := domain.EmiDetails{InstallmentAmount: quote.InstallmentAmount, InstallmentsCount: 3, RemainingInstallments: 3}
	assert.Equal(t, "200000.0001", emi.TotalPayable().String())
	assert.True(t, emi.Outstanding().Equal(emi.TotalPayable()))
}

func TestCalculateEmi_Deterministic(t *testing.T) {
	first, err := CalculateEmi(decimal.NewFromInt(90000), decimal.NewFromInt(12), 12, domain.FrequencyMonthly)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := CalculateEmi(decimal.NewFromInt(90000), decimal.NewFromInt(12), 12, domain.FrequencyMonthly)
		require.NoError(t, err)
		assert.True(t, first.InstallmentAmount.Equal(again.InstallmentAmount))
	}
	assert.Equal(t, "18300.00", first.InstallmentAmount.StringFixed(2))
}

func TestCalculateEmi_NotComputable(t *testing.T) {
	quote, err := CalculateEmi(decimal.Zero, decimal.NewFromInt(10), 12, domain.FrequencyMonthly)
	require.NoError(t, err)
	assert.False(t, quote.Computable())
	assert.True(t, quote.InstallmentAmount.IsZero())

	quote, err = CalculateEmi(decimal.NewFromInt(-5), decimal.NewFromInt(10), 12, domain.FrequencyMonthly)
	require.NoError(t, err)
	assert.False(t, quote.Computable())

	quote, err = CalculateEmi(decimal.NewFromInt(1000), decimal.NewFromInt(10), 5, domain.FrequencyYearly)
	require.NoError(t, err)
	assert.Equal(t, 0, quote.Periods)
	assert.False(t, quote.Computable())
}

func TestCalculateEmi_Rejects(t *testing.T) {
	_, err := CalculateEmi(decimal.NewFromInt(1000), decimal.NewFromInt(-1), 12, domain.FrequencyMonthly)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = CalculateEmi(decimal.NewFromInt(1000), decimal.NewFromInt(1), 12, domain.EmiFrequency("WEEKLY"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAddPeriod(t *testing.T) {
	tests := []struct {
		name      string
		from      time.Time
		frequency domain.EmiFrequency
		want      time.Time
	}{
		{"monthly", date(2024, time.March, 15), domain.FrequencyMonthly, date(2024, time.April, 15)},
		{"month end clamps in leap year", date(2024, time.January, 31), domain.FrequencyMonthly, date(2024, time.February, 29)},
		{"month end clamps", date(2023, time.January, 31), domain.FrequencyMonthly, date(2023, time.February, 28)},
		{"quarterly crosses year", date(2024, time.November, 30), domain.FrequencyQuarterly, date(2025, time.February, 28)},
		{"semi annually", date(2024, time.August, 31), domain.FrequencySemiAnnually, date(2025, time.February, 28)},
		{"yearly from leap day", date(2024, time.February, 29), domain.FrequencyYearly, date(2025, time.February, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddPeriod(tt.from, tt.frequency))
		})
	}
}

func TestSubtractPeriod(t *testing.T) {
	assert.Equal(t, date(2024, time.March, 15), SubtractPeriod(date(2024, time.April, 15), domain.FrequencyMonthly))
	assert.Equal(t, date(2024, time.February, 29), SubtractPeriod(date(2024, time.May, 31), domain.FrequencyQuarterly))
	assert.Equal(t, date(2023, time.March, 1), SubtractPeriod(date(2024, time.March, 1), domain.FrequencyYearly))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}
