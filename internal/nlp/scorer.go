package nlp

import (
	"sync"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// similarityFloor is the partial-ratio score (0-100) a fuzzy match must
// exceed to count, for both term extraction and intent classification.
const similarityFloor = 80

// Scorer wraps the partial-ratio similarity function behind an explicit
// lifecycle: initialized once, read-only afterwards, safe for concurrent use.
type Scorer struct{}

var (
	scorerOnce sync.Once
	scorer     *Scorer
)

// DefaultScorer returns the process-wide similarity scorer.
func DefaultScorer() *Scorer {
	scorerOnce.Do(func() {
		scorer = &Scorer{}
	})
	return scorer
}

// PartialRatio returns a Levenshtein-based partial similarity score in the
// range 0-100, tolerant of partial substring alignment.
func (s *Scorer) PartialRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	return fuzzy.PartialRatio(a, b)
}
