package nlp

import (
	"strings"

	"github.com/keerththansana/taxmate/internal/domain"
)

// PatternEntry is one row of the intent pattern table. The table is ordered:
// entries are checked top to bottom, so priority is explicit data rather than
// implicit code order.
type PatternEntry struct {
	Intent   domain.Intent
	Pattern  string
	Priority int
}

// intentPatterns is checked in order. Greetings and farewells come before
// domain intents so that "hi, what are tax rates" still opens politely only
// when nothing stronger matches first (exact substring wins on first hit).
var intentPatterns = []PatternEntry{
	{domain.IntentGreeting, "hello", 1},
	{domain.IntentGreeting, "good morning", 1},
	{domain.IntentGreeting, "good afternoon", 1},
	{domain.IntentGreeting, "good evening", 1},
	{domain.IntentFarewell, "goodbye", 2},
	{domain.IntentFarewell, "bye", 2},
	{domain.IntentFarewell, "see you", 2},
	{domain.IntentFarewell, "thank you", 2},
	{domain.IntentFarewell, "thanks", 2},
	{domain.IntentCalculation, "calculate", 3},
	{domain.IntentCalculation, "compute", 3},
	{domain.IntentCalculation, "how much tax", 3},
	{domain.IntentCalculation, "tax on my salary", 3},
	{domain.IntentTaxRates, "tax rate", 4},
	{domain.IntentTaxRates, "tax slab", 4},
	{domain.IntentTaxRates, "tax bracket", 4},
	{domain.IntentTaxRates, "slab", 4},
	{domain.IntentTaxRates, "percentage", 4},
	{domain.IntentDeduction, "deduction", 5},
	{domain.IntentDeduction, "relief", 5},
	{domain.IntentDeduction, "allowance", 5},
	{domain.IntentDeduction, "exemption", 5},
	{domain.IntentDeduction, "qualifying payment", 5},
	{domain.IntentCalendar, "deadline", 6},
	{domain.IntentCalendar, "due date", 6},
	{domain.IntentCalendar, "tax calendar", 6},
	{domain.IntentCalendar, "filing date", 6},
	{domain.IntentCalendar, "last date", 6},
	{domain.IntentFAQ, "what is", 7},
	{domain.IntentFAQ, "explain", 7},
	{domain.IntentFAQ, "how do", 7},
	{domain.IntentFAQ, "tell me about", 7},
}

var currencyTerms = []string{"rs", "rupees", "lkr"}

// Classification is the classifier verdict. Score is the winning pattern's
// partial-ratio score (100 for exact substring and short-circuit matches).
type Classification struct {
	Intent domain.Intent
	Score  int
}

// Classify maps text to an intent. Digit plus currency-term co-occurrence is
// a stronger signal than any pattern and short-circuits to CALCULATION. Exact
// substring matches win over fuzzy matches; fuzzy matches must exceed the
// similarity floor, ties resolving to the first-encountered pattern.
func Classify(text string) Classification {
	lower := strings.ToLower(text)

	if containsDigit(lower) && containsAnyTerm(lower, currencyTerms) {
		return Classification{Intent: domain.IntentCalculation, Score: 100}
	}

	best := Classification{Intent: domain.IntentGeneralQuery, Score: 0}
	s := DefaultScorer()

	for _, entry := range intentPatterns {
		if strings.Contains(lower, entry.Pattern) {
			return Classification{Intent: entry.Intent, Score: 100}
		}

		score := s.PartialRatio(entry.Pattern, lower)
		if score > best.Score && score > similarityFloor {
			best = Classification{Intent: entry.Intent, Score: score}
		}
	}

	return best
}

func containsDigit(text string) bool {
	for _, r := range text {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func containsAnyTerm(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
