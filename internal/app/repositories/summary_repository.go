package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planora/planora/internal/app/models"
)

// SummaryRepository handles database operations for summaries
type SummaryRepository struct {
	db *pgxpool.Pool
}

// NewSummaryRepository creates a new SummaryRepository
func NewSummaryRepository(db *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Create inserts a summary within the given transaction. Regeneration adds
// a new row; earlier rows for the same variant are kept.
func (r *SummaryRepository) Create(ctx context.Context, tx pgx.Tx, summary *models.Summary) (int64, error) {
	sql, args, err := squirrel.Insert("summaries").
		Columns("user_id", "file_id", "summary_type", "content").
		Values(summary.UserID, summary.FileID, summary.SummaryType, summary.Content).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building summary insert: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating summary: %w", err)
	}

	return id, nil
}

// ListByFile retrieves all summaries for a file, newest first
func (r *SummaryRepository) ListByFile(ctx context.Context, fileID, userID int64) ([]*models.Summary, error) {
	sql, args, err := squirrel.Select(
		"id", "user_id", "file_id", "summary_type", "content", "created_at",
	).
		From("summaries").
		Where(squirrel.Eq{"file_id": fileID, "user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building summary list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]*models.Summary, 0)
	for rows.Next() {
		var summary models.Summary
		err := rows.Scan(
			&summary.ID,
			&summary.UserID,
			&summary.FileID,
			&summary.SummaryType,
			&summary.Content,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning summary row: %w", err)
		}
		summaries = append(summaries, &summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}

	return summaries, nil
}
