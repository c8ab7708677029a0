package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/keerththansana/taxmate/internal/domain"
	taxerrors "github.com/keerththansana/taxmate/pkg/errors"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func testBrackets() []domain.Bracket {
	return []domain.Bracket{
		{LowerBound: dec(0), UpperBound: decPtr(1_200_000), Rate: dec(6), Period: domain.PeriodAnnual, FiscalYear: 2025},
		{LowerBound: dec(1_200_000), UpperBound: nil, Rate: dec(12), Period: domain.PeriodAnnual, FiscalYear: 2025},
	}
}

func TestCalculateTwoBrackets(t *testing.T) {
	result, err := Calculate(dec(1_500_000), testBrackets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1,200,000 at 6% = 72,000 plus 300,000 at 12% = 36,000.
	if !result.TotalTax.Equal(dec(108_000)) {
		t.Fatalf("expected total tax 108000, got %s", result.TotalTax)
	}
	if len(result.Breakdown) != 2 {
		t.Fatalf("expected two breakdown entries, got %d", len(result.Breakdown))
	}
	if !result.Breakdown[0].Tax.Equal(dec(72_000)) {
		t.Fatalf("expected first bracket tax 72000, got %s", result.Breakdown[0].Tax)
	}
	if !result.Breakdown[1].TaxableAmount.Equal(dec(300_000)) {
		t.Fatalf("expected second bracket taxable 300000, got %s", result.Breakdown[1].TaxableAmount)
	}
	if !result.EffectiveRate.Equal(decimal.NewFromFloat(0.072)) {
		t.Fatalf("expected effective rate 0.072, got %s", result.EffectiveRate)
	}
}

func TestCalculateIncomeWithinFirstBracket(t *testing.T) {
	result, err := Calculate(dec(500_000), testBrackets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Breakdown) != 1 {
		t.Fatalf("expected one breakdown entry, got %d", len(result.Breakdown))
	}
	if !result.TotalTax.Equal(dec(30_000)) {
		t.Fatalf("expected total tax 30000, got %s", result.TotalTax)
	}
}

func TestCalculateTaxableAmountsSumToIncome(t *testing.T) {
	brackets := []domain.Bracket{
		{LowerBound: dec(0), UpperBound: decPtr(1_200_000), Rate: dec(6), FiscalYear: 2025},
		{LowerBound: dec(1_200_000), UpperBound: decPtr(1_700_000), Rate: dec(18), FiscalYear: 2025},
		{LowerBound: dec(1_700_000), UpperBound: nil, Rate: dec(24), FiscalYear: 2025},
	}

	for _, income := range []int64{1, 1_200_000, 1_455_789, 3_456_789, 50_000_000} {
		result, err := Calculate(dec(income), brackets)
		if err != nil {
			t.Fatalf("income %d: unexpected error: %v", income, err)
		}

		sum := decimal.Zero
		for _, entry := range result.Breakdown {
			sum = sum.Add(entry.TaxableAmount)
		}
		if !sum.Equal(dec(income)) {
			t.Fatalf("income %d: taxable amounts sum to %s", income, sum)
		}
	}
}

func TestCalculateMonotonicInIncome(t *testing.T) {
	brackets := testBrackets()

	prev := decimal.Zero
	for _, income := range []int64{100_000, 1_200_000, 1_200_001, 2_000_000, 9_999_999} {
		result, err := Calculate(dec(income), brackets)
		if err != nil {
			t.Fatalf("income %d: unexpected error: %v", income, err)
		}
		if result.TotalTax.LessThan(prev) {
			t.Fatalf("tax decreased at income %d: %s < %s", income, result.TotalTax, prev)
		}
		prev = result.TotalTax
	}
}

func TestCalculateRejectsNonPositiveIncome(t *testing.T) {
	for _, income := range []int64{0, -1, -500_000} {
		_, err := Calculate(dec(income), testBrackets())
		if err == nil {
			t.Fatalf("income %d: expected error", income)
		}

		var validationErr *taxerrors.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("income %d: expected validation error, got %T", income, err)
		}
	}
}

func TestCalculateRejectsEmptyBrackets(t *testing.T) {
	_, err := Calculate(dec(1_000_000), nil)
	if err == nil {
		t.Fatalf("expected error for empty brackets")
	}

	var refErr *taxerrors.ReferenceDataError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected reference data error, got %T", err)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{dec(0), "0"},
		{dec(950), "950"},
		{dec(108_000), "108,000"},
		{dec(2_500_000), "2,500,000"},
		{decimal.NewFromFloat(1234.50), "1,234.50"},
		{dec(-72_000), "-72,000"},
	}

	for _, tc := range cases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
