package nlp

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractAmountWithRsPrefix(t *testing.T) {
	entities := Extract("calculate tax for Rs. 2,500,000 please")

	amount, ok := entities.FirstAmount()
	if !ok {
		t.Fatalf("expected an amount")
	}
	if !amount.Equal(decimal.NewFromInt(2500000)) {
		t.Fatalf("expected 2500000, got %s", amount)
	}
}

func TestExtractAmountRupeesSuffix(t *testing.T) {
	entities := Extract("I earn 150000 rupees monthly")

	amount, ok := entities.FirstAmount()
	if !ok {
		t.Fatalf("expected an amount")
	}
	if !amount.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("expected 150000, got %s", amount)
	}
}

func TestExtractAmountLKRSuffix(t *testing.T) {
	entities := Extract("my salary is 95,000 lkr")

	amount, ok := entities.FirstAmount()
	if !ok {
		t.Fatalf("expected an amount")
	}
	if !amount.Equal(decimal.NewFromInt(95000)) {
		t.Fatalf("expected 95000, got %s", amount)
	}
}

func TestExtractAmountBareIntegerFallback(t *testing.T) {
	entities := Extract("tax on 1200000")

	amount, ok := entities.FirstAmount()
	if !ok {
		t.Fatalf("expected fallback amount")
	}
	if !amount.Equal(decimal.NewFromInt(1200000)) {
		t.Fatalf("expected 1200000, got %s", amount)
	}
}

func TestExtractPrefixPatternWinsOverBareDigits(t *testing.T) {
	// 2024 appears first in the text but Rs. 50,000 matches a stronger pattern.
	entities := Extract("in 2024 I donated Rs. 50,000")

	amount, ok := entities.FirstAmount()
	if !ok {
		t.Fatalf("expected an amount")
	}
	if !amount.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("expected 50000, got %s", amount)
	}
}

func TestExtractNoAmount(t *testing.T) {
	entities := Extract("what deductions can I claim")
	if _, ok := entities.FirstAmount(); ok {
		t.Fatalf("expected no amount, got %v", entities.Amounts)
	}
}

func TestExtractDates(t *testing.T) {
	entities := Extract("the deadline is 2025-03-31, then 15 April")

	if len(entities.Dates) < 2 {
		t.Fatalf("expected two date tokens, got %v", entities.Dates)
	}
	if entities.Dates[0] != "2025-03-31" {
		t.Fatalf("expected ISO date first, got %v", entities.Dates)
	}
}

func TestExtractTaxTerms(t *testing.T) {
	entities := Extract("how does income tax and vat work")

	if !containsTerm(entities.TaxTerms, "income tax") {
		t.Fatalf("expected income tax term, got %v", entities.TaxTerms)
	}
	if !containsTerm(entities.TaxTerms, "vat") {
		t.Fatalf("expected vat term, got %v", entities.TaxTerms)
	}
}

func TestExtractDeductionTermsFuzzy(t *testing.T) {
	// "medicl" is a typo but clears the similarity floor against "medical".
	entities := Extract("can I claim medicl expenses")

	if !containsTerm(entities.DeductionTerms, "medical") {
		t.Fatalf("expected medical term from fuzzy match, got %v", entities.DeductionTerms)
	}
}

func TestExtractMalformedInputNeverFails(t *testing.T) {
	entities := Extract("Rs. ,,, 12,34,56 lkr rupees !!!")
	// No assertion on values; the call must simply not panic and
	// collections must be non-nil.
	if entities.Amounts == nil || entities.Dates == nil {
		t.Fatalf("expected non-nil collections")
	}
}

func containsTerm(terms []string, want string) bool {
	for _, term := range terms {
		if term == want {
			return true
		}
	}
	return false
}
