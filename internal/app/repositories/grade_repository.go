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

// GradeRepository handles database operations for grade entries
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

func (r *GradeRepository) selectGradeQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "user_id", "course_code", "assessment", "score", "weight",
		"graded_at", "created_at",
	).
		From("grades").
		PlaceholderFormat(squirrel.Dollar)
}

func scanGrade(row pgx.Row) (*models.Grade, error) {
	var grade models.Grade
	err := row.Scan(
		&grade.ID,
		&grade.UserID,
		&grade.CourseCode,
		&grade.Assessment,
		&grade.Score,
		&grade.Weight,
		&grade.GradedAt,
		&grade.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

// Create inserts a new grade entry and returns its ID
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) (int64, error) {
	sql, args, err := squirrel.Insert("grades").
		Columns("user_id", "course_code", "assessment", "score", "weight", "graded_at").
		Values(grade.UserID, grade.CourseCode, grade.Assessment, grade.Score, grade.Weight, grade.GradedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building grade insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating grade: %w", err)
	}

	return id, nil
}

// GetByID retrieves a grade entry owned by the given user
func (r *GradeRepository) GetByID(ctx context.Context, id, userID int64) (*models.Grade, error) {
	sql, args, err := r.selectGradeQuery().
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building grade select: %w", err)
	}

	grade, err := scanGrade(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, fmt.Errorf("error getting grade: %w", err)
	}

	return grade, nil
}

// ListByUser retrieves the user's grades, optionally filtered by course
func (r *GradeRepository) ListByUser(ctx context.Context, userID int64, courseCode string) ([]*models.Grade, error) {
	builder := r.selectGradeQuery().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("graded_at DESC", "id DESC")

	if courseCode != "" {
		builder = builder.Where(squirrel.Eq{"course_code": courseCode})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building grade list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing grades: %w", err)
	}
	defer rows.Close()

	grades := make([]*models.Grade, 0)
	for rows.Next() {
		grade, err := scanGrade(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grades = append(grades, grade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade rows: %w", err)
	}

	return grades, nil
}

// Update rewrites a grade entry owned by the given user
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	sql, args, err := squirrel.Update("grades").
		Set("course_code", grade.CourseCode).
		Set("assessment", grade.Assessment).
		Set("score", grade.Score).
		Set("weight", grade.Weight).
		Set("graded_at", grade.GradedAt).
		Where(squirrel.Eq{"id": grade.ID, "user_id": grade.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building grade update: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}

// Delete removes a grade entry owned by the given user
func (r *GradeRepository) Delete(ctx context.Context, id, userID int64) error {
	sql, args, err := squirrel.Delete("grades").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building grade delete: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}
