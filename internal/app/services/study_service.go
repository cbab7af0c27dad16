package services

import (
	"context"

	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/app/repositories"
)

// QuizService defines the interface for quiz retrieval
type QuizService interface {
	ListByFile(ctx context.Context, fileID, userID int64) ([]*models.Quiz, error)
	Get(ctx context.Context, quizID, userID int64) (*models.Quiz, error)
}

type quizServiceImpl struct {
	quizRepo *repositories.QuizRepository
}

// NewQuizService creates a new QuizService
func NewQuizService(quizRepo *repositories.QuizRepository) QuizService {
	return &quizServiceImpl{quizRepo: quizRepo}
}

func (s *quizServiceImpl) ListByFile(ctx context.Context, fileID, userID int64) ([]*models.Quiz, error) {
	return s.quizRepo.ListByFile(ctx, fileID, userID)
}

func (s *quizServiceImpl) Get(ctx context.Context, quizID, userID int64) (*models.Quiz, error) {
	return s.quizRepo.GetByID(ctx, quizID, userID)
}

// SummaryService defines the interface for summary retrieval
type SummaryService interface {
	ListByFile(ctx context.Context, fileID, userID int64) ([]*models.Summary, error)
}

type summaryServiceImpl struct {
	summaryRepo *repositories.SummaryRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(summaryRepo *repositories.SummaryRepository) SummaryService {
	return &summaryServiceImpl{summaryRepo: summaryRepo}
}

func (s *summaryServiceImpl) ListByFile(ctx context.Context, fileID, userID int64) ([]*models.Summary, error) {
	return s.summaryRepo.ListByFile(ctx, fileID, userID)
}
