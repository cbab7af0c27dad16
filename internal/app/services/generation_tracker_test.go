package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/app/models"
)

func TestStartReturnsDetachedCopy(t *testing.T) {
	tracker := NewGenerationTracker()

	request := tracker.Start(1, 7, models.GenerationFlashcards)
	tracker.Fail(request.ID, "upstream unavailable")

	// finish() mutates the tracked entry, never the value handed out by Start
	assert.Equal(t, models.GenerationPending, request.Status)
	assert.Empty(t, request.Error)
	assert.Nil(t, request.FinishedAt)

	tracked, err := tracker.Get(request.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.GenerationFailed, tracked.Status)
	assert.Equal(t, "upstream unavailable", tracked.Error)
	assert.NotNil(t, tracked.FinishedAt)
}

func TestGetReturnsDetachedCopy(t *testing.T) {
	tracker := NewGenerationTracker()

	request := tracker.Start(1, 7, models.GenerationQuiz)

	first, err := tracker.Get(request.ID, 1)
	require.NoError(t, err)

	tracker.Complete(request.ID)

	assert.Equal(t, models.GenerationPending, first.Status)

	second, err := tracker.Get(request.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.GenerationCompleted, second.Status)
}
