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

// ScheduleRepository handles database operations for schedule slots
type ScheduleRepository struct {
	db *pgxpool.Pool
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) selectScheduleQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "user_id", "title", "day_of_week", "start_time", "end_time",
		"location", "course_code", "created_at", "updated_at",
	).
		From("schedules").
		PlaceholderFormat(squirrel.Dollar)
}

func scanSchedule(row pgx.Row) (*models.Schedule, error) {
	var schedule models.Schedule
	err := row.Scan(
		&schedule.ID,
		&schedule.UserID,
		&schedule.Title,
		&schedule.DayOfWeek,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.Location,
		&schedule.CourseCode,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Create inserts a new schedule slot and returns its ID
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) (int64, error) {
	sql, args, err := squirrel.Insert("schedules").
		Columns("user_id", "title", "day_of_week", "start_time", "end_time", "location", "course_code").
		Values(schedule.UserID, schedule.Title, schedule.DayOfWeek, schedule.StartTime,
			schedule.EndTime, schedule.Location, schedule.CourseCode).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building schedule insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating schedule: %w", err)
	}

	return id, nil
}

// GetByID retrieves a schedule slot owned by the given user
func (r *ScheduleRepository) GetByID(ctx context.Context, id, userID int64) (*models.Schedule, error) {
	sql, args, err := r.selectScheduleQuery().
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building schedule select: %w", err)
	}

	schedule, err := scanSchedule(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error getting schedule: %w", err)
	}

	return schedule, nil
}

// ListByUser retrieves all schedule slots of a user ordered by weekday and time
func (r *ScheduleRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Schedule, error) {
	sql, args, err := r.selectScheduleQuery().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building schedule list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules: %w", err)
	}
	defer rows.Close()

	schedules := make([]*models.Schedule, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning schedule row: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}

	return schedules, nil
}

// Update rewrites a schedule slot owned by the given user
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	sql, args, err := squirrel.Update("schedules").
		Set("title", schedule.Title).
		Set("day_of_week", schedule.DayOfWeek).
		Set("start_time", schedule.StartTime).
		Set("end_time", schedule.EndTime).
		Set("location", schedule.Location).
		Set("course_code", schedule.CourseCode).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": schedule.ID, "user_id": schedule.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building schedule update: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}

	return nil
}

// Delete removes a schedule slot owned by the given user
func (r *ScheduleRepository) Delete(ctx context.Context, id, userID int64) error {
	sql, args, err := squirrel.Delete("schedules").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building schedule delete: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting schedule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}

	return nil
}
