package dto

import "time"

// SummaryGenerationRequest carries the summary variant to generate
type SummaryGenerationRequest struct {
	Variant string `json:"variant" binding:"omitempty,oneof=concise bullet_points key_definitions"`
}

// GenerationAcceptedResponse is returned when a generation request is queued
type GenerationAcceptedResponse struct {
	RequestID string `json:"requestId"`
	Status    string `json:"status"`
}

// GenerationStatusResponse reports the state of a generation request
type GenerationStatusResponse struct {
	RequestID  string     `json:"requestId"`
	FileID     int64      `json:"fileId"`
	Kind       string     `json:"kind"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}
