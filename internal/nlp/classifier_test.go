package nlp

import (
	"testing"

	"github.com/keerththansana/taxmate/internal/domain"
)

func TestClassifyCurrencyWithDigitsShortCircuits(t *testing.T) {
	// "tax rate" and "calculate" patterns are present, but digit plus
	// currency term is the stronger signal.
	got := Classify("calculate tax rate for 500000 rs")

	if got.Intent != domain.IntentCalculation {
		t.Fatalf("expected calculation intent, got %s", got.Intent)
	}
	if got.Score != 100 {
		t.Fatalf("expected score 100, got %d", got.Score)
	}
}

func TestClassifyRupeesSuffixShortCircuits(t *testing.T) {
	got := Classify("i earn 150000 rupees")
	if got.Intent != domain.IntentCalculation {
		t.Fatalf("expected calculation intent, got %s", got.Intent)
	}
}

func TestClassifyCurrencyWithoutDigitsDoesNotShortCircuit(t *testing.T) {
	got := Classify("rupees are the local currency")
	if got.Intent == domain.IntentCalculation {
		t.Fatalf("currency term without digits must not force calculation")
	}
}

func TestClassifyExactMatchFollowsTableOrder(t *testing.T) {
	// "hello" sits above "tax rate" and "what is" in the pattern table, so
	// the first exact hit wins.
	got := Classify("hello, what is the tax rate")

	if got.Intent != domain.IntentGreeting {
		t.Fatalf("expected greeting intent, got %s", got.Intent)
	}
	if got.Score != 100 {
		t.Fatalf("expected score 100, got %d", got.Score)
	}
}

func TestClassifyTaxRates(t *testing.T) {
	got := Classify("show me the tax slab breakdown")
	if got.Intent != domain.IntentTaxRates {
		t.Fatalf("expected tax rates intent, got %s", got.Intent)
	}
}

func TestClassifyFarewell(t *testing.T) {
	got := Classify("thanks, goodbye")
	if got.Intent != domain.IntentFarewell {
		t.Fatalf("expected farewell intent, got %s", got.Intent)
	}
}

func TestClassifyFuzzyAboveFloor(t *testing.T) {
	// "deducton" is misspelled, so no pattern matches exactly; the fuzzy
	// score against "deduction" clears the floor.
	got := Classify("deducton limits")

	if got.Intent != domain.IntentDeduction {
		t.Fatalf("expected deduction intent, got %s (score %d)", got.Intent, got.Score)
	}
	if got.Score <= similarityFloor || got.Score >= 100 {
		t.Fatalf("expected fuzzy score in (%d, 100), got %d", similarityFloor, got.Score)
	}
}

func TestClassifyGeneralQueryFallback(t *testing.T) {
	got := Classify("xyzzy plugh")

	if got.Intent != domain.IntentGeneralQuery {
		t.Fatalf("expected general query fallback, got %s", got.Intent)
	}
	if got.Score != 0 {
		t.Fatalf("expected zero score for fallback, got %d", got.Score)
	}
}
