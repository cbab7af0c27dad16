package models

import "time"

// DifficultyLevel represents how hard a flashcard is rated
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// IsValid checks whether the difficulty is one of the known levels
func (d DifficultyLevel) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Flashcard represents a generated study card tied to a source file.
// Mastery and review fields are adjusted only by study feedback.
type Flashcard struct {
	ID              int64           `json:"id" db:"id"`
	UserID          int64           `json:"userId" db:"user_id"`
	FileID          int64           `json:"fileId" db:"file_id"`
	Question        string          `json:"question" db:"question"`
	Answer          string          `json:"answer" db:"answer"`
	DifficultyLevel DifficultyLevel `json:"difficultyLevel" db:"difficulty_level"`
	ReviewCount     int             `json:"reviewCount" db:"review_count"`
	MasteryLevel    int             `json:"masteryLevel" db:"mastery_level"`
	LastReviewed    *time.Time      `json:"lastReviewed,omitempty" db:"last_reviewed"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}
