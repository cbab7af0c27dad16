package models

import "time"

// Schedule represents a recurring weekly class slot
type Schedule struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	DayOfWeek  int       `json:"dayOfWeek" db:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime  string    `json:"startTime" db:"start_time"`
	EndTime    string    `json:"endTime" db:"end_time"`
	Location   string    `json:"location" db:"location"`
	CourseCode string    `json:"courseCode" db:"course_code"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// PlannerNote represents a free-form course note
type PlannerNote struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	CourseCode string    `json:"courseCode" db:"course_code"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Grade represents a recorded assessment result
type Grade struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	CourseCode string    `json:"courseCode" db:"course_code"`
	Assessment string    `json:"assessment" db:"assessment"`
	Score      float64   `json:"score" db:"score"`
	Weight     float64   `json:"weight" db:"weight"`
	GradedAt   time.Time `json:"gradedAt" db:"graded_at"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
