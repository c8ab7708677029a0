// Package resolver ranks reference-data matches for a classified query. The
// resolution order is a fixed waterfall of strategies tried in sequence;
// the first strategy returning any answers wins, so results stay predictable
// rather than competing in one global scoreboard.
package resolver

import (
	"github.com/keerththansana/taxmate/internal/domain"
	"go.uber.org/zap"
)

// Query is the resolver input: the classified intent, the normalized keyword
// set, and the raw text (used only for fuzzy tie-breaking).
type Query struct {
	Intent   domain.Intent
	Keywords []string
	RawText  string
}

// Strategy resolves a query against one reference collection. An empty
// result means "not mine, try the next one".
type Strategy interface {
	Name() string
	Resolve(q *Query, snapshot *domain.ReferenceSnapshot) []domain.ResolvedAnswer
}

type Resolver struct {
	strategies []Strategy
	logger     *zap.Logger
}

// New builds the resolver with the canonical waterfall order:
// FAQ, rate table, deductions, qualifying payments, calendar.
func New(logger *zap.Logger) *Resolver {
	return &Resolver{
		strategies: []Strategy{
			&faqStrategy{},
			&rateTableStrategy{},
			&deductionStrategy{},
			&paymentStrategy{},
			&calendarStrategy{},
		},
		logger: logger,
	}
}

// Resolve tries each strategy in order and returns the first non-empty
// ranked result. An empty return means the composer should fall back to the
// suggestion template.
func (r *Resolver) Resolve(q *Query, snapshot *domain.ReferenceSnapshot) []domain.ResolvedAnswer {
	if snapshot == nil {
		return nil
	}

	for _, strategy := range r.strategies {
		answers := strategy.Resolve(q, snapshot)
		if len(answers) == 0 {
			continue
		}

		r.logger.Debug("Query resolved",
			zap.String("strategy", strategy.Name()),
			zap.Int("answers", len(answers)),
			zap.Float64("confidence", answers[0].Confidence),
		)
		return answers
	}

	return nil
}
