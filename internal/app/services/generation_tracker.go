package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/pkg/apperrors"
)

// GenerationTracker keeps per-request generation status in memory, keyed by
// request ID. There is no ambient per-file "generating" flag; concurrent
// requests for the same file each get their own entry and are not
// deduplicated.
type GenerationTracker struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*models.GenerationRequest
}

// NewGenerationTracker creates an empty tracker
func NewGenerationTracker() *GenerationTracker {
	return &GenerationTracker{
		requests: make(map[uuid.UUID]*models.GenerationRequest),
	}
}

// Start registers a new pending request and returns a snapshot of it.
// The tracked entry is mutated by the background run; handing out a copy
// keeps callers from racing with finish().
func (t *GenerationTracker) Start(userID, fileID int64, kind models.GenerationKind) *models.GenerationRequest {
	request := &models.GenerationRequest{
		ID:        uuid.New(),
		UserID:    userID,
		FileID:    fileID,
		Kind:      kind,
		Status:    models.GenerationPending,
		StartedAt: time.Now(),
	}

	t.mu.Lock()
	t.requests[request.ID] = request
	t.mu.Unlock()

	copied := *request
	return &copied
}

// Complete marks a request as finished successfully
func (t *GenerationTracker) Complete(id uuid.UUID) {
	t.finish(id, models.GenerationCompleted, "")
}

// Fail marks a request as failed with a reason
func (t *GenerationTracker) Fail(id uuid.UUID, reason string) {
	t.finish(id, models.GenerationFailed, reason)
}

func (t *GenerationTracker) finish(id uuid.UUID, status models.GenerationStatus, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	request, ok := t.requests[id]
	if !ok {
		return
	}

	now := time.Now()
	request.Status = status
	request.Error = reason
	request.FinishedAt = &now
}

// Get returns a copy of the request owned by the given user
func (t *GenerationTracker) Get(id uuid.UUID, userID int64) (*models.GenerationRequest, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	request, ok := t.requests[id]
	if !ok || request.UserID != userID {
		return nil, apperrors.ErrGenerationNotFound
	}

	copied := *request
	return &copied, nil
}
