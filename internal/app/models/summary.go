package models

import "time"

// SummaryType represents the requested summary variant
type SummaryType string

const (
	SummaryConcise        SummaryType = "concise"
	SummaryBulletPoints   SummaryType = "bullet_points"
	SummaryKeyDefinitions SummaryType = "key_definitions"
)

// IsValid checks whether the summary type is a known variant
func (s SummaryType) IsValid() bool {
	switch s {
	case SummaryConcise, SummaryBulletPoints, SummaryKeyDefinitions:
		return true
	}
	return false
}

// Summary represents generated summary text for a source file.
// Regeneration inserts a new row; older rows are kept.
type Summary struct {
	ID          int64       `json:"id" db:"id"`
	UserID      int64       `json:"userId" db:"user_id"`
	FileID      int64       `json:"fileId" db:"file_id"`
	SummaryType SummaryType `json:"summaryType" db:"summary_type"`
	Content     string      `json:"content" db:"content"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}
