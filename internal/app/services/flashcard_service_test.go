package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planora/planora/internal/app/models"
)

func TestApplyReviewMovesMasteryOneStep(t *testing.T) {
	cfg := DefaultMasteryConfig()

	card := &models.Flashcard{MasteryLevel: 2}
	applyReview(card, true, cfg)
	assert.Equal(t, 3, card.MasteryLevel)
	assert.Equal(t, 1, card.ReviewCount)

	applyReview(card, false, cfg)
	assert.Equal(t, 2, card.MasteryLevel)
	assert.Equal(t, 2, card.ReviewCount)
}

func TestApplyReviewClampsAtBounds(t *testing.T) {
	cfg := DefaultMasteryConfig()

	top := &models.Flashcard{MasteryLevel: cfg.Max}
	applyReview(top, true, cfg)
	assert.Equal(t, cfg.Max, top.MasteryLevel)

	bottom := &models.Flashcard{MasteryLevel: cfg.Min}
	applyReview(bottom, false, cfg)
	assert.Equal(t, cfg.Min, bottom.MasteryLevel)

	// Review count advances even when mastery cannot move
	assert.Equal(t, 1, top.ReviewCount)
	assert.Equal(t, 1, bottom.ReviewCount)
}

func TestApplyReviewCustomStep(t *testing.T) {
	cfg := MasteryConfig{Min: 0, Max: 10, Step: 2}

	card := &models.Flashcard{MasteryLevel: 9}
	applyReview(card, true, cfg)
	assert.Equal(t, 10, card.MasteryLevel)
}

func TestNewFlashcardServiceRejectsBrokenConfig(t *testing.T) {
	service := NewFlashcardService(nil, MasteryConfig{Min: 5, Max: 5, Step: 0})

	impl := service.(*flashcardServiceImpl)
	assert.Equal(t, DefaultMasteryConfig(), impl.mastery)
}
