package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodMonthly   Period = "Monthly"
	PeriodQuarterly Period = "Quarterly"
	PeriodAnnual    Period = "Annual"
)

type Frequency string

const (
	FrequencyYearly    Frequency = "Yearly"
	FrequencyQuarterly Frequency = "Quarterly"
)

type Audience string

const (
	AudienceIndividual Audience = "Individual"
	AudienceAll        Audience = "All"
)

type ApplicableScope string

const (
	ScopeAll        ApplicableScope = "all"
	ScopeEmployment ApplicableScope = "employment"
	ScopeRental     ApplicableScope = "rental"
	ScopeInterest   ApplicableScope = "interest"
	ScopeBusiness   ApplicableScope = "business"
)

// Bracket is one contiguous income range taxed at a single marginal rate.
// For a given fiscal year brackets are non-overlapping, ordered ascending by
// LowerBound, and each LowerBound equals the previous UpperBound. A nil
// UpperBound marks the final, open-ended bracket.
type Bracket struct {
	LowerBound decimal.Decimal  `json:"lower_bound"`
	UpperBound *decimal.Decimal `json:"upper_bound,omitempty"`
	Rate       decimal.Decimal  `json:"rate"`
	Period     Period           `json:"period"`
	FiscalYear int              `json:"fiscal_year"`
}

// Unbounded reports whether this is the final, open-ended bracket.
func (b Bracket) Unbounded() bool {
	return b.UpperBound == nil
}

type DeductionRule struct {
	CategoryName      string           `json:"category_name"`
	Description       string           `json:"description"`
	MaxAmount         *decimal.Decimal `json:"max_amount,omitempty"`
	Percentage        *decimal.Decimal `json:"percentage,omitempty"`
	ApplicableScope   ApplicableScope  `json:"applicable_scope"`
	SpecialConditions string           `json:"special_conditions,omitempty"`
	FiscalYear        int              `json:"fiscal_year"`
}

type FAQEntry struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
	Category string   `json:"category"`
}

type QualifyingPayment struct {
	PaymentType string          `json:"payment_type"`
	Description string          `json:"description"`
	MaxLimit    decimal.Decimal `json:"max_limit"`
	FiscalYear  int             `json:"fiscal_year"`
}

type CalendarEvent struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Frequency   Frequency `json:"frequency"`
	Audience    Audience  `json:"audience"`
}

// ReferenceSnapshot is an immutable view of every reference collection for
// one fiscal year. The pipeline only ever reads it; the store layer owns
// refreshing and swapping it.
type ReferenceSnapshot struct {
	FiscalYear         int                 `json:"fiscal_year"`
	Brackets           []Bracket           `json:"brackets"`
	Deductions         []DeductionRule     `json:"deductions"`
	FAQs               []FAQEntry          `json:"faqs"`
	QualifyingPayments []QualifyingPayment `json:"qualifying_payments"`
	CalendarEvents     []CalendarEvent     `json:"calendar_events"`
	LoadedAt           time.Time           `json:"loaded_at"`
}

// DeductionCategories lists the category names currently present, in store
// order. The suggestion template uses this so it stays consistent with the
// data actually loaded.
func (s *ReferenceSnapshot) DeductionCategories() []string {
	categories := make([]string, 0, len(s.Deductions))
	for _, d := range s.Deductions {
		categories = append(categories, d.CategoryName)
	}
	return categories
}
