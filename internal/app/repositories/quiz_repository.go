package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/pkg/apperrors"
	"github.com/planora/planora/internal/pkg/dberrors"
)

// QuizRepository handles database operations for quizzes and their questions
type QuizRepository struct {
	db *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository
func NewQuizRepository(db *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{db: db}
}

// CreateWithQuestions inserts a quiz and all of its questions within the
// given transaction. Options maps are stored as JSONB.
func (r *QuizRepository) CreateWithQuestions(ctx context.Context, tx pgx.Tx, quiz *models.Quiz) (int64, error) {
	sql, args, err := squirrel.Insert("quizzes").
		Columns("user_id", "file_id", "title").
		Values(quiz.UserID, quiz.FileID, quiz.Title).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building quiz insert: %w", err)
	}

	var quizID int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&quizID); err != nil {
		return 0, fmt.Errorf("error creating quiz: %w", err)
	}

	for _, question := range quiz.Questions {
		optionsJSON, err := json.Marshal(question.Options)
		if err != nil {
			return 0, fmt.Errorf("error encoding question options: %w", err)
		}

		sql, args, err := squirrel.Insert("quiz_questions").
			Columns("quiz_id", "question", "options", "correct_answer", "explanation").
			Values(quizID, question.Question, optionsJSON, question.CorrectAnswer, question.Explanation).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("error building question insert: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return 0, fmt.Errorf("error creating quiz question: %w", err)
		}
	}

	return quizID, nil
}

// GetByID retrieves a quiz with its questions, owned by the given user
func (r *QuizRepository) GetByID(ctx context.Context, id, userID int64) (*models.Quiz, error) {
	sql, args, err := squirrel.Select("id", "user_id", "file_id", "title", "created_at").
		From("quizzes").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building quiz select: %w", err)
	}

	var quiz models.Quiz
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&quiz.ID, &quiz.UserID, &quiz.FileID, &quiz.Title, &quiz.CreatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("error getting quiz: %w", err)
	}

	questions, err := r.listQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions

	return &quiz, nil
}

// ListByFile retrieves all quizzes for a file with their questions
func (r *QuizRepository) ListByFile(ctx context.Context, fileID, userID int64) ([]*models.Quiz, error) {
	sql, args, err := squirrel.Select("id", "user_id", "file_id", "title", "created_at").
		From("quizzes").
		Where(squirrel.Eq{"file_id": fileID, "user_id": userID}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building quiz list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]*models.Quiz, 0)
	for rows.Next() {
		var quiz models.Quiz
		if err := rows.Scan(&quiz.ID, &quiz.UserID, &quiz.FileID, &quiz.Title, &quiz.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning quiz row: %w", err)
		}
		quizzes = append(quizzes, &quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quiz rows: %w", err)
	}

	for _, quiz := range quizzes {
		questions, err := r.listQuestions(ctx, quiz.ID)
		if err != nil {
			return nil, err
		}
		quiz.Questions = questions
	}

	return quizzes, nil
}

// listQuestions loads a quiz's questions in creation order
func (r *QuizRepository) listQuestions(ctx context.Context, quizID int64) ([]models.QuizQuestion, error) {
	sql, args, err := squirrel.Select(
		"id", "quiz_id", "question", "options", "correct_answer", "explanation", "created_at",
	).
		From("quiz_questions").
		Where(squirrel.Eq{"quiz_id": quizID}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building question list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing quiz questions: %w", err)
	}
	defer rows.Close()

	questions := make([]models.QuizQuestion, 0)
	for rows.Next() {
		var question models.QuizQuestion
		var optionsJSON []byte
		err := rows.Scan(
			&question.ID,
			&question.QuizID,
			&question.Question,
			&optionsJSON,
			&question.CorrectAnswer,
			&question.Explanation,
			&question.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}

		if err := json.Unmarshal(optionsJSON, &question.Options); err != nil {
			return nil, fmt.Errorf("error decoding question options: %w", err)
		}

		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}

	return questions, nil
}
