// Package calculator computes progressive income tax over an ordered bracket
// schedule. All monetary arithmetic uses exact decimals so bracket boundaries
// never drift.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/keerththansana/taxmate/internal/domain"
	taxerrors "github.com/keerththansana/taxmate/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// BreakdownEntry records the contribution of a single bracket.
type BreakdownEntry struct {
	Range         string          `json:"range"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	Rate          decimal.Decimal `json:"rate"`
	Tax           decimal.Decimal `json:"tax"`
}

// Result is the full calculation output.
type Result struct {
	Income        decimal.Decimal  `json:"income"`
	TotalTax      decimal.Decimal  `json:"total_tax"`
	Breakdown     []BreakdownEntry `json:"breakdown"`
	EffectiveRate decimal.Decimal  `json:"effective_rate"`
}

// Calculate walks the brackets in ascending order, taxing min(remaining,
// span) in each until the income is exhausted. Brackets must already be
// sorted ascending by lower bound, which the reference store guarantees.
//
// income <= 0 is a validation failure, rejected before any bracket work.
// An empty bracket list is a reference-data failure, distinct from bad input.
func Calculate(income decimal.Decimal, brackets []domain.Bracket) (*Result, error) {
	if income.LessThanOrEqual(decimal.Zero) {
		return nil, taxerrors.NewValidationError(
			"income must be greater than zero", "income", income.String())
	}
	if len(brackets) == 0 {
		return nil, taxerrors.NewReferenceDataError(
			"no tax brackets available", "brackets")
	}

	remaining := income
	totalTax := decimal.Zero
	breakdown := make([]BreakdownEntry, 0, len(brackets))

	for _, bracket := range brackets {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		taxable := remaining
		if !bracket.Unbounded() {
			span := bracket.UpperBound.Sub(bracket.LowerBound)
			if span.LessThan(taxable) {
				taxable = span
			}
		}
		if taxable.LessThanOrEqual(decimal.Zero) {
			continue
		}

		tax := taxable.Mul(bracket.Rate).Div(hundred)
		totalTax = totalTax.Add(tax)
		breakdown = append(breakdown, BreakdownEntry{
			Range:         formatRange(bracket),
			TaxableAmount: taxable,
			Rate:          bracket.Rate,
			Tax:           tax,
		})
		remaining = remaining.Sub(taxable)
	}

	return &Result{
		Income:        income,
		TotalTax:      totalTax,
		Breakdown:     breakdown,
		EffectiveRate: totalTax.Div(income),
	}, nil
}

func formatRange(bracket domain.Bracket) string {
	if bracket.Unbounded() {
		return fmt.Sprintf("Rs. %s and above", formatMoney(bracket.LowerBound))
	}
	return fmt.Sprintf("Rs. %s to Rs. %s",
		formatMoney(bracket.LowerBound), formatMoney(*bracket.UpperBound))
}

// formatMoney renders a decimal with thousands separators, two fraction
// digits only when the value has them.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart := s[:len(s)-3]
	frac := s[len(s)-2:]

	negative := false
	if len(intPart) > 0 && intPart[0] == '-' {
		negative = true
		intPart = intPart[1:]
	}

	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	result := string(out)
	if frac != "00" {
		result += "." + frac
	}
	if negative {
		result = "-" + result
	}
	return result
}

// FormatMoney exposes the shared money rendering for the response composer.
func FormatMoney(d decimal.Decimal) string {
	return formatMoney(d)
}
