package store

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/keerththansana/taxmate/internal/domain"
	taxerrors "github.com/keerththansana/taxmate/pkg/errors"
)

// QueryLogRepository appends interaction records. The log is append-only;
// nothing in the pipeline reads it back, and concurrent writers need no
// coordination beyond the database's own serialization.
type QueryLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewQueryLogRepository(postgres *PostgresService, logger *zap.Logger) *QueryLogRepository {
	return &QueryLogRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

func (r *QueryLogRepository) Append(ctx context.Context, record *domain.QueryRecord) error {
	query := `
		INSERT INTO user_queries (question, matched_response, confidence, conversation_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.RawText,
		record.MatchedSummary,
		record.Confidence,
		record.ConversationID,
		record.Timestamp,
	)
	if err != nil {
		return taxerrors.NewStoreError("failed to append query record", "insert", "user_queries", err)
	}

	return nil
}
