package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/keerththansana/taxmate/internal/domain"
	taxerrors "github.com/keerththansana/taxmate/pkg/errors"
)

// ReferenceRepository reads the five reference collections. All collections
// are maintained by an administrative process; this repository never writes.
type ReferenceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewReferenceRepository(postgres *PostgresService, logger *zap.Logger) *ReferenceRepository {
	return &ReferenceRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

// LoadSnapshot reads every collection for one fiscal year in store order.
func (r *ReferenceRepository) LoadSnapshot(ctx context.Context, fiscalYear int) (*domain.ReferenceSnapshot, error) {
	brackets, err := r.Brackets(ctx, fiscalYear)
	if err != nil {
		return nil, err
	}
	deductions, err := r.Deductions(ctx, fiscalYear)
	if err != nil {
		return nil, err
	}
	faqs, err := r.FAQs(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := r.QualifyingPayments(ctx, fiscalYear)
	if err != nil {
		return nil, err
	}
	events, err := r.CalendarEvents(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.ReferenceSnapshot{
		FiscalYear:         fiscalYear,
		Brackets:           brackets,
		Deductions:         deductions,
		FAQs:               faqs,
		QualifyingPayments: payments,
		CalendarEvents:     events,
		LoadedAt:           time.Now().UTC(),
	}, nil
}

// Brackets returns the bracket schedule ordered ascending by lower bound,
// the order the calculator requires.
func (r *ReferenceRepository) Brackets(ctx context.Context, fiscalYear int) ([]domain.Bracket, error) {
	query := `
		SELECT lower_bound, upper_bound, rate, period, fiscal_year
		FROM tax_brackets
		WHERE fiscal_year = $1
		ORDER BY lower_bound ASC
	`

	rows, err := r.db.QueryContext(ctx, query, fiscalYear)
	if err != nil {
		return nil, taxerrors.NewStoreError("failed to query brackets", "select", "tax_brackets", err)
	}
	defer rows.Close()

	var brackets []domain.Bracket
	for rows.Next() {
		var (
			lower  string
			upper  sql.NullString
			rate   string
			period string
			year   int
		)
		if err := rows.Scan(&lower, &upper, &rate, &period, &year); err != nil {
			r.logger.Warn("Failed to scan bracket row", zap.Error(err))
			continue
		}

		bracket := domain.Bracket{Period: domain.Period(period), FiscalYear: year}
		if bracket.LowerBound, err = decimal.NewFromString(lower); err != nil {
			r.logger.Warn("Invalid bracket lower bound", zap.String("value", lower), zap.Error(err))
			continue
		}
		if bracket.Rate, err = decimal.NewFromString(rate); err != nil {
			r.logger.Warn("Invalid bracket rate", zap.String("value", rate), zap.Error(err))
			continue
		}
		if upper.Valid {
			upperValue, err := decimal.NewFromString(upper.String)
			if err != nil {
				r.logger.Warn("Invalid bracket upper bound", zap.String("value", upper.String), zap.Error(err))
				continue
			}
			bracket.UpperBound = &upperValue
		}
		brackets = append(brackets, bracket)
	}

	return brackets, rows.Err()
}

func (r *ReferenceRepository) Deductions(ctx context.Context, fiscalYear int) ([]domain.DeductionRule, error) {
	query := `
		SELECT category_name, description, max_amount, percentage,
		       applicable_scope, special_conditions, fiscal_year
		FROM deduction_rules
		WHERE fiscal_year = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, fiscalYear)
	if err != nil {
		return nil, taxerrors.NewStoreError("failed to query deductions", "select", "deduction_rules", err)
	}
	defer rows.Close()

	var deductions []domain.DeductionRule
	for rows.Next() {
		var (
			d          domain.DeductionRule
			maxAmount  sql.NullString
			percentage sql.NullString
			conditions sql.NullString
			scope      string
		)
		if err := rows.Scan(&d.CategoryName, &d.Description, &maxAmount, &percentage,
			&scope, &conditions, &d.FiscalYear); err != nil {
			r.logger.Warn("Failed to scan deduction row", zap.Error(err))
			continue
		}

		d.ApplicableScope = domain.ApplicableScope(scope)
		if maxAmount.Valid {
			if amount, err := decimal.NewFromString(maxAmount.String); err == nil {
				d.MaxAmount = &amount
			}
		}
		if percentage.Valid {
			if pct, err := decimal.NewFromString(percentage.String); err == nil {
				d.Percentage = &pct
			}
		}
		if conditions.Valid {
			d.SpecialConditions = conditions.String
		}
		deductions = append(deductions, d)
	}

	return deductions, rows.Err()
}

func (r *ReferenceRepository) FAQs(ctx context.Context) ([]domain.FAQEntry, error) {
	query := `
		SELECT question, answer, keywords, category
		FROM faq_entries
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, taxerrors.NewStoreError("failed to query faqs", "select", "faq_entries", err)
	}
	defer rows.Close()

	var faqs []domain.FAQEntry
	for rows.Next() {
		var (
			faq      domain.FAQEntry
			keywords string
		)
		if err := rows.Scan(&faq.Question, &faq.Answer, &keywords, &faq.Category); err != nil {
			r.logger.Warn("Failed to scan faq row", zap.Error(err))
			continue
		}
		faq.Keywords = splitKeywords(keywords)
		faqs = append(faqs, faq)
	}

	return faqs, rows.Err()
}

func (r *ReferenceRepository) QualifyingPayments(ctx context.Context, fiscalYear int) ([]domain.QualifyingPayment, error) {
	query := `
		SELECT payment_type, description, max_limit, fiscal_year
		FROM qualifying_payments
		WHERE fiscal_year = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, fiscalYear)
	if err != nil {
		return nil, taxerrors.NewStoreError("failed to query qualifying payments", "select", "qualifying_payments", err)
	}
	defer rows.Close()

	var payments []domain.QualifyingPayment
	for rows.Next() {
		var (
			p        domain.QualifyingPayment
			maxLimit string
		)
		if err := rows.Scan(&p.PaymentType, &p.Description, &maxLimit, &p.FiscalYear); err != nil {
			r.logger.Warn("Failed to scan qualifying payment row", zap.Error(err))
			continue
		}
		if p.MaxLimit, err = decimal.NewFromString(maxLimit); err != nil {
			r.logger.Warn("Invalid payment limit", zap.String("value", maxLimit), zap.Error(err))
			continue
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// CalendarEvents returns events ordered by date ascending.
func (r *ReferenceRepository) CalendarEvents(ctx context.Context) ([]domain.CalendarEvent, error) {
	query := `
		SELECT name, description, event_date, frequency, audience
		FROM calendar_events
		ORDER BY event_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, taxerrors.NewStoreError("failed to query calendar events", "select", "calendar_events", err)
	}
	defer rows.Close()

	var events []domain.CalendarEvent
	for rows.Next() {
		var (
			e         domain.CalendarEvent
			frequency string
			audience  string
		)
		if err := rows.Scan(&e.Name, &e.Description, &e.Date, &frequency, &audience); err != nil {
			r.logger.Warn("Failed to scan calendar row", zap.Error(err))
			continue
		}
		e.Frequency = domain.Frequency(frequency)
		e.Audience = domain.Audience(audience)
		events = append(events, e)
	}

	return events, rows.Err()
}

// splitKeywords parses the comma-separated keyword column.
func splitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}
