package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/app/models/dto"
	"github.com/planora/planora/internal/app/services"
	"github.com/planora/planora/internal/middleware"
)

// GenerationController starts generation runs and reports their status
type GenerationController struct {
	generationService services.GenerationService
}

// NewGenerationController creates a new GenerationController
func NewGenerationController(generationService services.GenerationService) *GenerationController {
	return &GenerationController{generationService: generationService}
}

// GenerateFlashcards starts a flashcard run for a file
func (c *GenerationController) GenerateFlashcards(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	fileID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	request, err := c.generationService.GenerateFlashcards(ctx.Request.Context(), userID, fileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.GenerationAcceptedResponse{
		RequestID: request.ID.String(),
		Status:    string(request.Status),
	})
}

// GenerateQuiz starts a quiz run for a file
func (c *GenerationController) GenerateQuiz(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	fileID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	request, err := c.generationService.GenerateQuiz(ctx.Request.Context(), userID, fileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.GenerationAcceptedResponse{
		RequestID: request.ID.String(),
		Status:    string(request.Status),
	})
}

// GenerateSummary starts a summary run for a file with an optional variant
func (c *GenerationController) GenerateSummary(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	fileID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SummaryGenerationRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid summary variant")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	request, err := c.generationService.GenerateSummary(ctx.Request.Context(), userID, fileID, models.SummaryType(req.Variant))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.GenerationAcceptedResponse{
		RequestID: request.ID.String(),
		Status:    string(request.Status),
	})
}

// GetStatus reports the status of one generation request
func (c *GenerationController) GetStatus(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	requestID, err := uuid.Parse(ctx.Param("requestId"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid requestId parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	request, err := c.generationService.GetRequest(requestID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GenerationStatusResponse{
		RequestID:  request.ID.String(),
		FileID:     request.FileID,
		Kind:       string(request.Kind),
		Status:     string(request.Status),
		Error:      request.Error,
		StartedAt:  request.StartedAt,
		FinishedAt: request.FinishedAt,
	})
}
