package services

import (
	"context"
	"time"

	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/app/repositories"
)

// MasteryConfig bounds the flashcard mastery scale
type MasteryConfig struct {
	Min  int
	Max  int
	Step int
}

// DefaultMasteryConfig returns the stock mastery scale
func DefaultMasteryConfig() MasteryConfig {
	return MasteryConfig{Min: 0, Max: 5, Step: 1}
}

// FlashcardService defines the interface for flashcard study operations
type FlashcardService interface {
	ListByFile(ctx context.Context, fileID, userID int64) ([]*models.Flashcard, error)
	Review(ctx context.Context, cardID, userID int64, remembered bool) (*models.Flashcard, error)
}

type flashcardServiceImpl struct {
	flashcardRepo *repositories.FlashcardRepository
	mastery       MasteryConfig
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(flashcardRepo *repositories.FlashcardRepository, mastery MasteryConfig) FlashcardService {
	if mastery.Step <= 0 || mastery.Min >= mastery.Max {
		mastery = DefaultMasteryConfig()
	}
	return &flashcardServiceImpl{
		flashcardRepo: flashcardRepo,
		mastery:       mastery,
	}
}

// ListByFile returns the flashcards generated for a file
func (s *flashcardServiceImpl) ListByFile(ctx context.Context, fileID, userID int64) ([]*models.Flashcard, error) {
	return s.flashcardRepo.ListByFile(ctx, fileID, userID)
}

// Review applies study feedback to one card: mastery moves one step up when
// remembered and one step down when not, clamped to the configured bounds.
// The review count and last-reviewed stamp always advance.
func (s *flashcardServiceImpl) Review(ctx context.Context, cardID, userID int64, remembered bool) (*models.Flashcard, error) {
	card, err := s.flashcardRepo.GetByID(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	applyReview(card, remembered, s.mastery)
	now := time.Now()

	if err := s.flashcardRepo.UpdateReview(ctx, card, now); err != nil {
		return nil, err
	}
	card.LastReviewed = &now

	return card, nil
}

// applyReview moves mastery one step in the direction of the feedback,
// clamped to the configured bounds, and advances the review count
func applyReview(card *models.Flashcard, remembered bool, cfg MasteryConfig) {
	if remembered {
		card.MasteryLevel += cfg.Step
	} else {
		card.MasteryLevel -= cfg.Step
	}
	if card.MasteryLevel > cfg.Max {
		card.MasteryLevel = cfg.Max
	}
	if card.MasteryLevel < cfg.Min {
		card.MasteryLevel = cfg.Min
	}

	card.ReviewCount++
}
