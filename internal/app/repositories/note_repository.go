package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/pkg/apperrors"
	"github.com/planora/planora/internal/pkg/dberrors"
)

// NoteRepository handles database operations for planner notes
type NoteRepository struct {
	db *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) selectNoteQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "user_id", "title", "content", "course_code", "created_at", "updated_at",
	).
		From("planner_notes").
		PlaceholderFormat(squirrel.Dollar)
}

func scanNote(row pgx.Row) (*models.PlannerNote, error) {
	var note models.PlannerNote
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.CourseCode,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Create inserts a new note and returns its ID
func (r *NoteRepository) Create(ctx context.Context, note *models.PlannerNote) (int64, error) {
	sql, args, err := squirrel.Insert("planner_notes").
		Columns("user_id", "title", "content", "course_code").
		Values(note.UserID, note.Title, note.Content, note.CourseCode).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building note insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating note: %w", err)
	}

	return id, nil
}

// GetByID retrieves a note owned by the given user
func (r *NoteRepository) GetByID(ctx context.Context, id, userID int64) (*models.PlannerNote, error) {
	sql, args, err := r.selectNoteQuery().
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building note select: %w", err)
	}

	note, err := scanNote(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("error getting note: %w", err)
	}

	return note, nil
}

// ListByUser retrieves a page of the user's notes, newest first
func (r *NoteRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.PlannerNote, int64, error) {
	countSQL, countArgs, err := squirrel.Select("count(*)").
		From("planner_notes").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building note count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notes: %w", err)
	}

	sql, args, err := r.selectNoteQuery().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building note list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*models.PlannerNote, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning note row: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating note rows: %w", err)
	}

	return notes, total, nil
}

// Update rewrites a note owned by the given user
func (r *NoteRepository) Update(ctx context.Context, note *models.PlannerNote) error {
	sql, args, err := squirrel.Update("planner_notes").
		Set("title", note.Title).
		Set("content", note.Content).
		Set("course_code", note.CourseCode).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": note.ID, "user_id": note.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building note update: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// Delete removes a note owned by the given user
func (r *NoteRepository) Delete(ctx context.Context, id, userID int64) error {
	sql, args, err := squirrel.Delete("planner_notes").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building note delete: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}
