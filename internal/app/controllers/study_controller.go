package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planora/planora/internal/app/models/dto"
	"github.com/planora/planora/internal/app/services"
	"github.com/planora/planora/internal/middleware"
)

// StudyController serves generated artifacts and study feedback
type StudyController struct {
	flashcardService services.FlashcardService
	quizService      services.QuizService
	summaryService   services.SummaryService
}

// NewStudyController creates a new StudyController
func NewStudyController(
	flashcardService services.FlashcardService,
	quizService services.QuizService,
	summaryService services.SummaryService,
) *StudyController {
	return &StudyController{
		flashcardService: flashcardService,
		quizService:      quizService,
		summaryService:   summaryService,
	}
}

// ListFlashcards returns the flashcards generated for a file
func (c *StudyController) ListFlashcards(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	fileID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	cards, err := c.flashcardService.ListByFile(ctx.Request.Context(), fileID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, cards)
}

// ReviewFlashcard applies study feedback to one card
func (c *StudyController) ReviewFlashcard(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	cardID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.FlashcardReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Remembered == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A boolean 'remembered' field is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	card, err := c.flashcardService.Review(ctx.Request.Context(), cardID, userID, *req.Remembered)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, card)
}

// ListQuizzes returns the quizzes generated for a file
func (c *StudyController) ListQuizzes(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	fileID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	quizzes, err := c.quizService.ListByFile(ctx.Request.Context(), fileID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, quizzes)
}

// ListSummaries returns the summaries generated for a file
func (c *StudyController) ListSummaries(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	fileID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	summaries, err := c.summaryService.ListByFile(ctx.Request.Context(), fileID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summaries)
}
