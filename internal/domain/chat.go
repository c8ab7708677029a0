package domain

import "time"

// ChatRequest is the transport-neutral chat contract: a message plus an
// optional conversation id supplied by the client.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse always carries success plus a human-readable response, on
// every path including internal failures.
type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// AnswerKind labels where a resolved answer came from.
type AnswerKind string

const (
	AnswerFAQ         AnswerKind = "faq"
	AnswerRateTable   AnswerKind = "rate_table"
	AnswerDeduction   AnswerKind = "deduction"
	AnswerPayment     AnswerKind = "payment"
	AnswerCalculation AnswerKind = "calculation"
	AnswerCalendar    AnswerKind = "calendar"
	AnswerSuggestion  AnswerKind = "suggestion"
)

// ResolvedAnswer is an ephemeral, per-request match produced by the resolver
// and consumed by the composer. Payload holds the matched record.
type ResolvedAnswer struct {
	Kind       AnswerKind
	Payload    any
	Confidence float64
}

// QueryRecord is the append-only interaction log entry emitted once per
// resolved query. The resolution pipeline never reads it back.
type QueryRecord struct {
	RawText        string
	MatchedSummary string
	Confidence     float64
	ConversationID string
	Timestamp      time.Time
}
