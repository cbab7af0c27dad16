package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationKind selects which artifact a generation request produces
type GenerationKind string

const (
	GenerationFlashcards GenerationKind = "flashcards"
	GenerationQuiz       GenerationKind = "quiz"
	GenerationSummary    GenerationKind = "summary"
)

// GenerationStatus is the lifecycle state of a generation request
type GenerationStatus string

const (
	GenerationPending   GenerationStatus = "pending"
	GenerationCompleted GenerationStatus = "completed"
	GenerationFailed    GenerationStatus = "failed"
)

// GenerationRequest tracks one content-generation run. It is held in memory
// only; completed artifacts live in their own tables.
type GenerationRequest struct {
	ID         uuid.UUID        `json:"id"`
	UserID     int64            `json:"userId"`
	FileID     int64            `json:"fileId"`
	Kind       GenerationKind   `json:"kind"`
	Status     GenerationStatus `json:"status"`
	Error      string           `json:"error,omitempty"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt *time.Time       `json:"finishedAt,omitempty"`
}
