package models

import "time"

// Quiz represents a generated quiz for a source file
type Quiz struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	FileID    int64     `json:"fileId" db:"file_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Questions []QuizQuestion `json:"questions,omitempty"` // Relation, no db tag
}

// QuizQuestion represents one multiple-choice question of a quiz.
// Options maps a label ("A".."D") to the option text; CorrectAnswer
// is always one of those labels.
type QuizQuestion struct {
	ID            int64             `json:"id" db:"id"`
	QuizID        int64             `json:"quizId" db:"quiz_id"`
	Question      string            `json:"question" db:"question"`
	Options       map[string]string `json:"options" db:"options"`
	CorrectAnswer string            `json:"correctAnswer" db:"correct_answer"`
	Explanation   string            `json:"explanation" db:"explanation"`
	CreatedAt     time.Time         `json:"createdAt" db:"created_at"`
}
