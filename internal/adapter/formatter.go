// Package adapter formats resolved answers into the structured text block
// returned to clients. The formatter performs no lookups of its own; it is a
// pure function over already-resolved inputs and never returns an empty
// string.
package adapter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/keerththansana/taxmate/internal/domain"
	"github.com/keerththansana/taxmate/internal/service/calculator"
)

var hundredPercent = decimal.NewFromInt(100)

// maxSections caps how many matched records one answer carries so long
// keyword overlaps do not dump the whole collection on the user.
const maxSections = 3

type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

// FormatEmptyPrompt is returned when the message contains no usable text.
func (f *ResponseFormatter) FormatEmptyPrompt() string {
	return "# ❓ Please ask a tax-related question"
}

func (f *ResponseFormatter) FormatGreeting() string {
	return "# 👋 Hello!\n\nI'm TaxMate. Ask me about tax rates, deductions, filing deadlines, or say \"calculate tax for Rs. 2,500,000\"."
}

func (f *ResponseFormatter) FormatFarewell() string {
	return "# 👋 Goodbye!\n\nHappy to help any time you have a tax question."
}

// FormatValidationMessage wraps bad-input guidance for the user.
func (f *ResponseFormatter) FormatValidationMessage(guidance string) string {
	return fmt.Sprintf("# ⚠️ %s", guidance)
}

// FormatDegraded is returned when reference data is missing or empty.
func (f *ResponseFormatter) FormatDegraded() string {
	return "# ⚠️ Tax reference data is currently unavailable. Please try again later."
}

// FormatInternalFailure is the generic apologetic response for unexpected
// failures. The transport still returns it with success=false in the payload.
func (f *ResponseFormatter) FormatInternalFailure() string {
	return "# ⚠️ Error\nSorry, something went wrong. Please try again."
}

// FormatAnswers renders ranked resolver output. All answers in one result
// come from the same waterfall step, so the first answer's kind selects the
// layout.
func (f *ResponseFormatter) FormatAnswers(answers []domain.ResolvedAnswer) string {
	if len(answers) == 0 {
		return f.FormatInternalFailure()
	}

	switch answers[0].Kind {
	case domain.AnswerFAQ:
		return f.formatFAQs(answers)
	case domain.AnswerRateTable:
		if brackets, ok := answers[0].Payload.([]domain.Bracket); ok {
			return f.FormatRateTable(brackets)
		}
	case domain.AnswerDeduction:
		return f.formatDeductions(answers)
	case domain.AnswerPayment:
		return f.formatPayments(answers)
	case domain.AnswerCalendar:
		return f.formatCalendar(answers)
	}
	return f.FormatInternalFailure()
}

func (f *ResponseFormatter) formatFAQs(answers []domain.ResolvedAnswer) string {
	var sb strings.Builder
	for i, answer := range answers {
		if i >= maxSections {
			break
		}
		faq, ok := answer.Payload.(domain.FAQEntry)
		if !ok {
			continue
		}
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("# ❓ %s\n\n%s", faq.Question, faq.Answer))
	}
	return sb.String()
}

// FormatRateTable renders the full ordered bracket list.
func (f *ResponseFormatter) FormatRateTable(brackets []domain.Bracket) string {
	if len(brackets) == 0 {
		return f.FormatDegraded()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# 💰 Income Tax Rates (%d)\n\n", brackets[0].FiscalYear))
	for _, b := range brackets {
		upper := "and above"
		if !b.Unbounded() {
			upper = "Rs. " + calculator.FormatMoney(*b.UpperBound)
		}
		sb.WriteString(fmt.Sprintf("## Income Range: Rs. %s to %s\n",
			calculator.FormatMoney(b.LowerBound), upper))
		sb.WriteString(fmt.Sprintf("- Tax Rate: **%s%%**\n", b.Rate.String()))
		sb.WriteString(fmt.Sprintf("- Period: %s\n\n", b.Period))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (f *ResponseFormatter) formatDeductions(answers []domain.ResolvedAnswer) string {
	var sb strings.Builder
	sb.WriteString("# 💰 Tax Deductions\n\n")
	count := 0
	for _, answer := range answers {
		if count >= maxSections {
			break
		}
		d, ok := answer.Payload.(domain.DeductionRule)
		if !ok {
			continue
		}
		count++

		sb.WriteString(fmt.Sprintf("## %s\n%s\n\n### Details\n", d.CategoryName, d.Description))
		if d.MaxAmount != nil {
			sb.WriteString(fmt.Sprintf("- Maximum Amount: Rs. %s\n", calculator.FormatMoney(*d.MaxAmount)))
		}
		if d.Percentage != nil {
			sb.WriteString(fmt.Sprintf("- Rate: %s%%\n", d.Percentage.String()))
		}
		if d.SpecialConditions != "" {
			sb.WriteString(fmt.Sprintf("- Conditions: %s\n", d.SpecialConditions))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (f *ResponseFormatter) formatPayments(answers []domain.ResolvedAnswer) string {
	var sb strings.Builder
	sb.WriteString("# 💳 Qualifying Payments\n\n")
	count := 0
	for _, answer := range answers {
		if count >= maxSections {
			break
		}
		p, ok := answer.Payload.(domain.QualifyingPayment)
		if !ok {
			continue
		}
		count++

		sb.WriteString(fmt.Sprintf("## %s\n%s\n", p.PaymentType, p.Description))
		sb.WriteString(fmt.Sprintf("- Maximum Limit: Rs. %s\n", calculator.FormatMoney(p.MaxLimit)))
		sb.WriteString(fmt.Sprintf("- Tax Year: %d\n\n", p.FiscalYear))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (f *ResponseFormatter) formatCalendar(answers []domain.ResolvedAnswer) string {
	var sb strings.Builder
	sb.WriteString("# 📅 Tax Calendar\n\n")
	count := 0
	for _, answer := range answers {
		if count >= maxSections {
			break
		}
		e, ok := answer.Payload.(domain.CalendarEvent)
		if !ok {
			continue
		}
		count++

		sb.WriteString(fmt.Sprintf("## %s\n%s\n", e.Name, e.Description))
		sb.WriteString(fmt.Sprintf("- Date: %s\n", e.Date.Format("2 January 2006")))
		sb.WriteString(fmt.Sprintf("- Frequency: %s\n", e.Frequency))
		sb.WriteString(fmt.Sprintf("- Applies To: %s\n\n", e.Audience))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatCalculation renders a calculator breakdown.
func (f *ResponseFormatter) FormatCalculation(result *calculator.Result) string {
	var sb strings.Builder
	sb.WriteString("# 🧮 Tax Calculation\n\n")
	sb.WriteString(fmt.Sprintf("Income: Rs. %s\n\n", calculator.FormatMoney(result.Income)))

	for _, entry := range result.Breakdown {
		sb.WriteString(fmt.Sprintf("## Bracket: %s\n", entry.Range))
		sb.WriteString(fmt.Sprintf("- Taxable Amount: Rs. %s\n", calculator.FormatMoney(entry.TaxableAmount)))
		sb.WriteString(fmt.Sprintf("- Rate: %s%%\n", entry.Rate.String()))
		sb.WriteString(fmt.Sprintf("- Tax: Rs. %s\n\n", calculator.FormatMoney(entry.Tax)))
	}

	sb.WriteString(fmt.Sprintf("# 💵 Total Tax Payable\nRs. %s\n", calculator.FormatMoney(result.TotalTax)))
	sb.WriteString(fmt.Sprintf("Effective Rate: %s%%",
		result.EffectiveRate.Mul(hundredPercent).Round(2).String()))
	return sb.String()
}

// FormatSuggestion is the no-match fallback: example questions plus the
// deduction categories actually present in the reference store.
func (f *ResponseFormatter) FormatSuggestion(deductionCategories []string) string {
	var sb strings.Builder
	sb.WriteString("# 🤔 Available Tax Topics\n\n")

	if len(deductionCategories) > 0 {
		sb.WriteString("## Deduction Types\n")
		for _, category := range deductionCategories {
			sb.WriteString(fmt.Sprintf("- %s\n", category))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Example Queries\n")
	sb.WriteString("- Calculate tax for Rs. 2,500,000\n")
	sb.WriteString("- What are the current tax rates?\n")
	sb.WriteString("- Tell me about personal relief\n")
	sb.WriteString("- When is the income tax filing deadline?")
	return sb.String()
}
