package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planora/planora/internal/app/models/dto"
	"github.com/planora/planora/internal/app/services"
	"github.com/planora/planora/internal/middleware"
)

// ChatController relays assistant conversations over server-sent events
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// Stream accepts the transcript plus a new message and relays assistant
// deltas as SSE events. The final event carries the updated transcript so
// the client replaces its local copy; on failure the failed turn is absent
// from it.
func (c *ChatController) Stream(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.ChatStreamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A 'message' field is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	transcript, err := c.chatService.StreamReply(
		ctx.Request.Context(),
		userID,
		req.Messages,
		req.Message,
		func(delta string) error {
			ctx.SSEvent("message", delta)
			ctx.Writer.Flush()
			return nil
		},
	)
	if err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
		return
	}

	ctx.SSEvent("done", transcript)
	ctx.Writer.Flush()
}
