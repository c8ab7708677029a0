package domain

// Intent is the classified purpose of a user query. Classification is
// stateless per call; labels are mutually exclusive.
type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentFarewell     Intent = "farewell"
	IntentCalculation  Intent = "calculation"
	IntentTaxRates     Intent = "tax_rates"
	IntentDeduction    Intent = "deduction"
	IntentCalendar     Intent = "calendar"
	IntentFAQ          Intent = "faq"
	IntentGeneralQuery Intent = "general_query"
)
