package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/app/repositories"
	"github.com/planora/planora/internal/db"
	"github.com/planora/planora/internal/pkg/apperrors"
)

// ArtifactWriter persists the validated output of one generation request.
// Every write is all-or-nothing; a partial batch is never left behind.
type ArtifactWriter interface {
	WriteFlashcards(ctx context.Context, userID, fileID int64, cards []ParsedFlashcard) error
	WriteQuiz(ctx context.Context, userID, fileID int64, title string, questions []ParsedQuizQuestion) error
	WriteSummary(ctx context.Context, userID, fileID int64, variant models.SummaryType, content string) error
}

// batchWriter writes artifact batches inside a single transaction
type batchWriter struct {
	database      *db.PostgresDB
	flashcardRepo *repositories.FlashcardRepository
	quizRepo      *repositories.QuizRepository
	summaryRepo   *repositories.SummaryRepository
}

// NewArtifactWriter creates the transactional artifact writer
func NewArtifactWriter(
	database *db.PostgresDB,
	flashcardRepo *repositories.FlashcardRepository,
	quizRepo *repositories.QuizRepository,
	summaryRepo *repositories.SummaryRepository,
) ArtifactWriter {
	return &batchWriter{
		database:      database,
		flashcardRepo: flashcardRepo,
		quizRepo:      quizRepo,
		summaryRepo:   summaryRepo,
	}
}

// WriteFlashcards inserts all cards of a request as one batch
func (w *batchWriter) WriteFlashcards(ctx context.Context, userID, fileID int64, cards []ParsedFlashcard) error {
	rows := make([]*models.Flashcard, 0, len(cards))
	for _, card := range cards {
		rows = append(rows, &models.Flashcard{
			UserID:          userID,
			FileID:          fileID,
			Question:        card.Question,
			Answer:          card.Answer,
			DifficultyLevel: models.DifficultyLevel(card.DifficultyLevel),
		})
	}

	err := w.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return w.flashcardRepo.CreateBatch(ctx, tx, rows)
	})
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

// WriteQuiz inserts the quiz and all of its questions as one batch
func (w *batchWriter) WriteQuiz(ctx context.Context, userID, fileID int64, title string, questions []ParsedQuizQuestion) error {
	quiz := &models.Quiz{
		UserID: userID,
		FileID: fileID,
		Title:  title,
	}
	for _, question := range questions {
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			Question:      question.Question,
			Options:       question.Options,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
		})
	}

	err := w.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := w.quizRepo.CreateWithQuestions(ctx, tx, quiz)
		return err
	})
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

// WriteSummary inserts one summary row
func (w *batchWriter) WriteSummary(ctx context.Context, userID, fileID int64, variant models.SummaryType, content string) error {
	summary := &models.Summary{
		UserID:      userID,
		FileID:      fileID,
		SummaryType: variant,
		Content:     content,
	}

	err := w.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := w.summaryRepo.Create(ctx, tx, summary)
		return err
	})
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}
