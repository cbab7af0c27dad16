package dto

import "github.com/planora/planora/internal/app/models"

// ChatStreamRequest carries the full transcript plus the new user message
type ChatStreamRequest struct {
	Messages []models.ChatMessage `json:"messages"`
	Message  string               `json:"message" binding:"required"`
}
