package resolver

import (
	"sort"
	"strings"

	"github.com/keerththansana/taxmate/internal/domain"
	"github.com/keerththansana/taxmate/internal/nlp"
)

// rankedMatch pairs a candidate record with its keyword overlap count and a
// fuzzy similarity score. Count dominates; similarity is a secondary
// tie-breaker only and never overrides an exact substring match.
type rankedMatch struct {
	index      int
	count      int
	similarity int
}

// countOverlap returns how many query keywords appear (case-insensitive
// substring) in the rank field, plus the best partial-ratio score between any
// keyword and the field.
func countOverlap(keywords []string, field string) (int, int) {
	lower := strings.ToLower(field)
	scorer := nlp.DefaultScorer()

	count := 0
	bestSimilarity := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			count++
			continue
		}
		if score := scorer.PartialRatio(keyword, lower); score > bestSimilarity {
			bestSimilarity = score
		}
	}
	return count, bestSimilarity
}

func confidence(count, keywordTotal int) float64 {
	if keywordTotal == 0 {
		return 0
	}
	c := float64(count) / float64(keywordTotal)
	if c > 1 {
		return 1
	}
	return c
}

// sortMatches orders by overlap count descending, similarity descending,
// keeping store order for full ties.
func sortMatches(matches []rankedMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].count != matches[j].count {
			return matches[i].count > matches[j].count
		}
		return matches[i].similarity > matches[j].similarity
	})
}

// faqStrategy matches any FAQ whose keyword list or question text contains at
// least one query keyword. Ranking counts overlaps against the keyword field.
type faqStrategy struct{}

func (s *faqStrategy) Name() string { return "faq" }

func (s *faqStrategy) Resolve(q *Query, snapshot *domain.ReferenceSnapshot) []domain.ResolvedAnswer {
	if len(q.Keywords) == 0 {
		return nil
	}

	var matches []rankedMatch
	for i, faq := range snapshot.FAQs {
		keywordField := strings.Join(faq.Keywords, " ")
		count, similarity := countOverlap(q.Keywords, keywordField)
		questionCount, _ := countOverlap(q.Keywords, faq.Question)
		if count == 0 && questionCount == 0 {
			continue
		}
		matches = append(matches, rankedMatch{index: i, count: count, similarity: similarity})
	}
	if len(matches) == 0 {
		return nil
	}
	sortMatches(matches)

	answers := make([]domain.ResolvedAnswer, 0, len(matches))
	for _, m := range matches {
		answers = append(answers, domain.ResolvedAnswer{
			Kind:       domain.AnswerFAQ,
			Payload:    snapshot.FAQs[m.index],
			Confidence: confidence(m.count, len(q.Keywords)),
		})
	}
	return answers
}

// rateTableStrategy returns the full ordered bracket list for TAX_RATES
// queries, bypassing keyword scoring entirely.
type rateTableStrategy struct{}

func (s *rateTableStrategy) Name() string { return "rate_table" }

func (s *rateTableStrategy) Resolve(q *Query, snapshot *domain.ReferenceSnapshot) []domain.ResolvedAnswer {
	if q.Intent != domain.IntentTaxRates || len(snapshot.Brackets) == 0 {
		return nil
	}
	return []domain.ResolvedAnswer{{
		Kind:       domain.AnswerRateTable,
		Payload:    snapshot.Brackets,
		Confidence: 1,
	}}
}

// deductionStrategy matches deductions by category name or description.
type deductionStrategy struct{}

func (s *deductionStrategy) Name() string { return "deduction" }

func (s *deductionStrategy) Resolve(q *Query, snapshot *domain.ReferenceSnapshot) []domain.ResolvedAnswer {
	if len(q.Keywords) == 0 {
		return nil
	}

	var matches []rankedMatch
	for i, d := range snapshot.Deductions {
		count, similarity := countOverlap(q.Keywords, d.CategoryName+" "+d.Description)
		if count == 0 {
			continue
		}
		matches = append(matches, rankedMatch{index: i, count: count, similarity: similarity})
	}
	if len(matches) == 0 {
		return nil
	}
	sortMatches(matches)

	answers := make([]domain.ResolvedAnswer, 0, len(matches))
	for _, m := range matches {
		answers = append(answers, domain.ResolvedAnswer{
			Kind:       domain.AnswerDeduction,
			Payload:    snapshot.Deductions[m.index],
			Confidence: confidence(m.count, len(q.Keywords)),
		})
	}
	return answers
}

// paymentStrategy matches qualifying payments by type or description.
type paymentStrategy struct{}

func (s *paymentStrategy) Name() string { return "qualifying_payment" }

func (s *paymentStrategy) Resolve(q *Query, snapshot *domain.ReferenceSnapshot) []domain.ResolvedAnswer {
	if len(q.Keywords) == 0 {
		return nil
	}

	var matches []rankedMatch
	for i, p := range snapshot.QualifyingPayments {
		count, similarity := countOverlap(q.Keywords, p.PaymentType+" "+p.Description)
		if count == 0 {
			continue
		}
		matches = append(matches, rankedMatch{index: i, count: count, similarity: similarity})
	}
	if len(matches) == 0 {
		return nil
	}
	sortMatches(matches)

	answers := make([]domain.ResolvedAnswer, 0, len(matches))
	for _, m := range matches {
		answers = append(answers, domain.ResolvedAnswer{
			Kind:       domain.AnswerPayment,
			Payload:    snapshot.QualifyingPayments[m.index],
			Confidence: confidence(m.count, len(q.Keywords)),
		})
	}
	return answers
}

// calendarStrategy matches calendar events, ordering equal-count ties by
// event date ascending so the nearest obligation surfaces first.
type calendarStrategy struct{}

func (s *calendarStrategy) Name() string { return "calendar" }

func (s *calendarStrategy) Resolve(q *Query, snapshot *domain.ReferenceSnapshot) []domain.ResolvedAnswer {
	if len(q.Keywords) == 0 {
		return nil
	}

	var matches []rankedMatch
	for i, e := range snapshot.CalendarEvents {
		count, similarity := countOverlap(q.Keywords, e.Name+" "+e.Description)
		if count == 0 {
			continue
		}
		matches = append(matches, rankedMatch{index: i, count: count, similarity: similarity})
	}
	if len(matches) == 0 {
		return nil
	}

	events := snapshot.CalendarEvents
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].count != matches[j].count {
			return matches[i].count > matches[j].count
		}
		return events[matches[i].index].Date.Before(events[matches[j].index].Date)
	})

	answers := make([]domain.ResolvedAnswer, 0, len(matches))
	for _, m := range matches {
		answers = append(answers, domain.ResolvedAnswer{
			Kind:       domain.AnswerCalendar,
			Payload:    events[m.index],
			Confidence: confidence(m.count, len(q.Keywords)),
		})
	}
	return answers
}
