package nlp

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Entities holds everything the extractor pulls from raw text. Unmatched
// categories stay empty; extraction never fails on malformed input.
type Entities struct {
	Amounts        []decimal.Decimal
	Dates          []string
	TaxTerms       []string
	DeductionTerms []string
}

// FirstAmount returns the first extracted amount, if any. Only the first
// amount is used downstream.
func (e Entities) FirstAmount() (decimal.Decimal, bool) {
	if len(e.Amounts) == 0 {
		return decimal.Zero, false
	}
	return e.Amounts[0], true
}

// Amount patterns, applied in order. The first pattern with any match wins;
// the bare-integer pattern is a last-resort fallback.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)rs\.?\s*(\d[\d,]*)`),
	regexp.MustCompile(`(?i)(\d[\d,]*)\s*rupees`),
	regexp.MustCompile(`(?i)(\d[\d,]*)\s*lkr`),
}

var bareAmountPattern = regexp.MustCompile(`(\d[\d,]*)`)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
	regexp.MustCompile(`(?i)(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?`),
	regexp.MustCompile(`(?i)\d{1,2}(?:st|nd|rd|th)?\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)`),
}

// Fixed vocabularies for term extraction.
var taxTerms = []string{
	"income tax", "apit", "wht", "vat", "corporate tax",
	"capital gains", "withholding",
}

var deductionTerms = []string{
	"relief", "deduction", "allowance", "exemption",
	"personal relief", "rental", "medical", "donation",
}

// Extract pulls currency amounts, date-like tokens, and domain terms from
// raw text using pattern rules plus fuzzy term matching.
func Extract(text string) Entities {
	entities := Entities{
		Amounts:        []decimal.Decimal{},
		Dates:          []string{},
		TaxTerms:       []string{},
		DeductionTerms: []string{},
	}
	if strings.TrimSpace(text) == "" {
		return entities
	}

	entities.Amounts = extractAmounts(text)

	for _, pattern := range datePatterns {
		entities.Dates = append(entities.Dates, pattern.FindAllString(text, -1)...)
	}

	s := DefaultScorer()
	lower := strings.ToLower(text)
	for _, term := range taxTerms {
		if s.PartialRatio(term, lower) > similarityFloor {
			entities.TaxTerms = append(entities.TaxTerms, term)
		}
	}
	for _, term := range deductionTerms {
		if s.PartialRatio(term, lower) > similarityFloor {
			entities.DeductionTerms = append(entities.DeductionTerms, term)
		}
	}

	return entities
}

func extractAmounts(text string) []decimal.Decimal {
	for _, pattern := range amountPatterns {
		matches := pattern.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		if amounts := parseAmounts(matches); len(amounts) > 0 {
			return amounts
		}
	}

	if matches := bareAmountPattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		return parseAmounts(matches)
	}

	return []decimal.Decimal{}
}

func parseAmounts(matches [][]string) []decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(matches))
	for _, match := range matches {
		raw := strings.ReplaceAll(match[1], ",", "")
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		amounts = append(amounts, amount)
	}
	return amounts
}
