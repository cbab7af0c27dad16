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

// FileRepository handles database operations for uploaded files
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) selectFileQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "user_id", "file_name", "file_path", "file_size", "mime_type",
		"created_at", "updated_at",
	).
		From("files").
		PlaceholderFormat(squirrel.Dollar)
}

func scanFile(row pgx.Row) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID,
		&file.UserID,
		&file.FileName,
		&file.FilePath,
		&file.FileSize,
		&file.MimeType,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// Create inserts a new file record and returns its ID
func (r *FileRepository) Create(ctx context.Context, file *models.File) (int64, error) {
	sql, args, err := squirrel.Insert("files").
		Columns("user_id", "file_name", "file_path", "file_size", "mime_type").
		Values(file.UserID, file.FileName, file.FilePath, file.FileSize, file.MimeType).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building file insert query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating file: %w", err)
	}

	return id, nil
}

// GetByID retrieves a file owned by the given user
func (r *FileRepository) GetByID(ctx context.Context, id, userID int64) (*models.File, error) {
	sql, args, err := r.selectFileQuery().
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building file select query: %w", err)
	}

	file, err := scanFile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("error getting file: %w", err)
	}

	return file, nil
}

// ListByUser retrieves all files owned by the given user, newest first
func (r *FileRepository) ListByUser(ctx context.Context, userID int64) ([]*models.File, error) {
	sql, args, err := r.selectFileQuery().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building file list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	defer rows.Close()

	files := make([]*models.File, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning file row: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file rows: %w", err)
	}

	return files, nil
}

// Delete removes a file owned by the given user. Generated artifacts
// cascade at the schema level.
func (r *FileRepository) Delete(ctx context.Context, id, userID int64) error {
	sql, args, err := squirrel.Delete("files").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building file delete query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}

	return nil
}
