// Package service wires the query pipeline together: normalize, extract,
// classify, then calculate or resolve, then compose. Each request runs the
// chain synchronously and independently; the only write side effect is the
// append-only query log, emitted off the request goroutine.
package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/keerththansana/taxmate/internal/adapter"
	"github.com/keerththansana/taxmate/internal/domain"
	"github.com/keerththansana/taxmate/internal/nlp"
	"github.com/keerththansana/taxmate/internal/service/calculator"
	"github.com/keerththansana/taxmate/internal/service/resolver"
	"github.com/keerththansana/taxmate/internal/util"
	taxerrors "github.com/keerththansana/taxmate/pkg/errors"
)

const (
	maxQueryLength  = 500
	summaryLength   = 200
	logWriteTimeout = 5 * time.Second
)

var controlCharsPattern = regexp.MustCompile(`[\x00-\x1F\x7F]`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// ReferenceProvider supplies the read-only reference-data snapshot. The
// provider owns refreshing it; the pipeline never mutates what it returns.
type ReferenceProvider interface {
	Snapshot(ctx context.Context) (*domain.ReferenceSnapshot, error)
}

// QueryLogger appends one interaction record per resolved query. Failures
// are swallowed by the caller, never propagated to the answer path.
type QueryLogger interface {
	Append(ctx context.Context, record *domain.QueryRecord) error
}

type Chatbot struct {
	provider  ReferenceProvider
	queryLog  QueryLogger
	resolver  *resolver.Resolver
	formatter *adapter.ResponseFormatter
	logger    *zap.Logger
	logWrites conc.WaitGroup
}

func NewChatbot(
	provider ReferenceProvider,
	queryLog QueryLogger,
	res *resolver.Resolver,
	formatter *adapter.ResponseFormatter,
	logger *zap.Logger,
) *Chatbot {
	return &Chatbot{
		provider:  provider,
		queryLog:  queryLog,
		resolver:  res,
		formatter: formatter,
		logger:    logger,
	}
}

// Process answers a single chat request. Every path, including internal
// failures, returns a structured response; no error escapes to the caller.
func (c *Chatbot) Process(ctx context.Context, req domain.ChatRequest) (resp domain.ChatResponse) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in query pipeline", zap.Any("panic", r))
			resp = domain.ChatResponse{
				Success:  false,
				Response: c.formatter.FormatInternalFailure(),
			}
		}
	}()

	message := sanitizeInput(req.Message)
	if message == "" {
		return domain.ChatResponse{Success: true, Response: c.formatter.FormatEmptyPrompt()}
	}

	conversationID := strings.TrimSpace(req.ConversationID)
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	normalized, keywords := nlp.Normalize(message)
	entities := nlp.Extract(message)
	classification := nlp.Classify(normalized)

	c.logger.Debug("Query classified",
		zap.String("intent", string(classification.Intent)),
		zap.Int("score", classification.Score),
		zap.Int("keywords", len(keywords)),
	)

	var response string
	var confidence float64
	success := true

	switch classification.Intent {
	case domain.IntentGreeting:
		response = c.formatter.FormatGreeting()
		confidence = 1
	case domain.IntentFarewell:
		response = c.formatter.FormatFarewell()
		confidence = 1
	case domain.IntentCalculation:
		response, confidence, success = c.handleCalculation(ctx, entities)
	default:
		response, confidence, success = c.handleKnowledgeQuery(ctx, classification.Intent, keywords, message)
	}

	c.appendQueryRecord(message, response, confidence, conversationID)

	return domain.ChatResponse{Success: success, Response: response}
}

// Close drains outstanding log writes. Panics from the log goroutines are
// recovered here rather than crashing the process.
func (c *Chatbot) Close() {
	if recovered := c.logWrites.WaitAndRecover(); recovered != nil {
		c.logger.Error("Query log writer panicked", zap.Any("panic", recovered.Value))
	}
}

func (c *Chatbot) handleCalculation(ctx context.Context, entities nlp.Entities) (string, float64, bool) {
	income, ok := entities.FirstAmount()
	if !ok {
		return c.formatter.FormatValidationMessage(
			"Please include an income amount, e.g. \"calculate tax for Rs. 2,500,000\""), 0, true
	}

	snapshot, err := c.provider.Snapshot(ctx)
	if err != nil {
		c.logger.Error("Failed to load reference snapshot", zap.Error(err))
		return c.formatter.FormatDegraded(), 0, true
	}

	result, err := calculator.Calculate(income, snapshot.Brackets)
	if err != nil {
		return c.calculationFailure(err)
	}

	return c.formatter.FormatCalculation(result), 1, true
}

func (c *Chatbot) calculationFailure(err error) (string, float64, bool) {
	var validationErr *taxerrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.formatter.FormatValidationMessage("Please provide a valid income amount"), 0, true
	}

	var refErr *taxerrors.ReferenceDataError
	if errors.As(err, &refErr) {
		return c.formatter.FormatDegraded(), 0, true
	}

	c.logger.Error("Tax calculation failed", zap.Error(err))
	return c.formatter.FormatInternalFailure(), 0, false
}

func (c *Chatbot) handleKnowledgeQuery(ctx context.Context, intent domain.Intent, keywords []string, raw string) (string, float64, bool) {
	snapshot, err := c.provider.Snapshot(ctx)
	if err != nil {
		c.logger.Error("Failed to load reference snapshot", zap.Error(err))
		return c.formatter.FormatDegraded(), 0, true
	}

	query := &resolver.Query{
		Intent:   intent,
		Keywords: keywords,
		RawText:  raw,
	}

	answers := c.resolver.Resolve(query, snapshot)
	if len(answers) > 0 {
		return c.formatter.FormatAnswers(answers), answers[0].Confidence, true
	}

	return c.formatter.FormatSuggestion(snapshot.DeductionCategories()), 0, true
}

// appendQueryRecord writes the interaction log without blocking the answer
// path. Write failures are logged and dropped.
func (c *Chatbot) appendQueryRecord(rawText, response string, confidence float64, conversationID string) {
	if c.queryLog == nil {
		return
	}

	record := &domain.QueryRecord{
		RawText:        rawText,
		MatchedSummary: util.TruncateString(response, summaryLength),
		Confidence:     confidence,
		ConversationID: conversationID,
		Timestamp:      time.Now().UTC(),
	}

	c.logWrites.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
		defer cancel()

		if err := c.queryLog.Append(ctx, record); err != nil {
			c.logger.Warn("Failed to append query record",
				zap.String("conversation_id", record.ConversationID),
				zap.Error(err),
			)
		}
	})
}

// sanitizeInput strips control characters, collapses whitespace, and caps
// the query length.
func sanitizeInput(input string) string {
	withoutControl := controlCharsPattern.ReplaceAllString(input, " ")
	normalized := whitespacePattern.ReplaceAllString(withoutControl, " ")
	trimmed := strings.TrimSpace(normalized)

	if len(trimmed) > maxQueryLength {
		return trimmed[:maxQueryLength]
	}
	return trimmed
}
