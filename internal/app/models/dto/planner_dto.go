package dto

import "time"

// ScheduleRequest represents create/update data for a schedule slot
type ScheduleRequest struct {
	Title      string `json:"title" binding:"required"`
	DayOfWeek  *int   `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime  string `json:"startTime" binding:"required"`
	EndTime    string `json:"endTime" binding:"required"`
	Location   string `json:"location"`
	CourseCode string `json:"courseCode"`
}

// PlannerNoteRequest represents create/update data for a course note
type PlannerNoteRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	CourseCode string `json:"courseCode"`
}

// GradeRequest represents create/update data for a grade entry
type GradeRequest struct {
	CourseCode string     `json:"courseCode" binding:"required"`
	Assessment string     `json:"assessment" binding:"required"`
	Score      *float64   `json:"score" binding:"required,min=0"`
	Weight     float64    `json:"weight" binding:"min=0,max=100"`
	GradedAt   *time.Time `json:"gradedAt"`
}
