package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/pkg/apperrors"
	"github.com/planora/planora/internal/pkg/dberrors"
)

// FlashcardRepository handles database operations for flashcards
type FlashcardRepository struct {
	db *pgxpool.Pool
}

// NewFlashcardRepository creates a new FlashcardRepository
func NewFlashcardRepository(db *pgxpool.Pool) *FlashcardRepository {
	return &FlashcardRepository{db: db}
}

func (r *FlashcardRepository) selectFlashcardQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "user_id", "file_id", "question", "answer", "difficulty_level",
		"review_count", "mastery_level", "last_reviewed", "created_at",
	).
		From("flashcards").
		PlaceholderFormat(squirrel.Dollar)
}

func scanFlashcard(row pgx.Row) (*models.Flashcard, error) {
	var card models.Flashcard
	err := row.Scan(
		&card.ID,
		&card.UserID,
		&card.FileID,
		&card.Question,
		&card.Answer,
		&card.DifficultyLevel,
		&card.ReviewCount,
		&card.MasteryLevel,
		&card.LastReviewed,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateBatch inserts all cards of one generation request within the given
// transaction. Either every card is written or none is.
func (r *FlashcardRepository) CreateBatch(ctx context.Context, tx pgx.Tx, cards []*models.Flashcard) error {
	builder := squirrel.Insert("flashcards").
		Columns("user_id", "file_id", "question", "answer", "difficulty_level").
		PlaceholderFormat(squirrel.Dollar)

	for _, card := range cards {
		builder = builder.Values(card.UserID, card.FileID, card.Question, card.Answer, card.DifficultyLevel)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("error building flashcard batch insert: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting flashcards: %w", err)
	}

	return nil
}

// GetByID retrieves a flashcard owned by the given user
func (r *FlashcardRepository) GetByID(ctx context.Context, id, userID int64) (*models.Flashcard, error) {
	sql, args, err := r.selectFlashcardQuery().
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building flashcard select query: %w", err)
	}

	card, err := scanFlashcard(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrFlashcardNotFound
		}
		return nil, fmt.Errorf("error getting flashcard: %w", err)
	}

	return card, nil
}

// ListByFile retrieves all flashcards generated for a file, oldest first
func (r *FlashcardRepository) ListByFile(ctx context.Context, fileID, userID int64) ([]*models.Flashcard, error) {
	sql, args, err := r.selectFlashcardQuery().
		Where(squirrel.Eq{"file_id": fileID, "user_id": userID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building flashcard list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing flashcards: %w", err)
	}
	defer rows.Close()

	cards := make([]*models.Flashcard, 0)
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning flashcard row: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flashcard rows: %w", err)
	}

	return cards, nil
}

// UpdateReview writes back the study-feedback fields of one card
func (r *FlashcardRepository) UpdateReview(ctx context.Context, card *models.Flashcard, reviewedAt time.Time) error {
	sql, args, err := squirrel.Update("flashcards").
		Set("review_count", card.ReviewCount).
		Set("mastery_level", card.MasteryLevel).
		Set("last_reviewed", reviewedAt).
		Where(squirrel.Eq{"id": card.ID, "user_id": card.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building flashcard review update: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating flashcard review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFlashcardNotFound
	}

	return nil
}
