package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planora/planora/internal/app/models/dto"
	"github.com/planora/planora/internal/app/services"
	"github.com/planora/planora/internal/middleware"
)

// PlannerController handles schedules, notes, and grades
type PlannerController struct {
	plannerService services.PlannerService
}

// NewPlannerController creates a new PlannerController
func NewPlannerController(plannerService services.PlannerService) *PlannerController {
	return &PlannerController{plannerService: plannerService}
}

func (c *PlannerController) ListSchedules(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	schedules, err := c.plannerService.ListSchedules(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, schedules)
}

func (c *PlannerController) GetSchedule(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	schedule, err := c.plannerService.GetSchedule(ctx.Request.Context(), id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, schedule)
}

func (c *PlannerController) CreateSchedule(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.ScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	schedule, err := c.plannerService.CreateSchedule(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, schedule)
}

func (c *PlannerController) UpdateSchedule(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	schedule, err := c.plannerService.UpdateSchedule(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, schedule)
}

func (c *PlannerController) DeleteSchedule(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.plannerService.DeleteSchedule(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Schedule deleted"})
}

func (c *PlannerController) ListNotes(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var page dto.PaginationQuery
	if err := ctx.ShouldBindQuery(&page); err != nil {
		bindError(ctx, err)
		return
	}

	notes, total, err := c.plannerService.ListNotes(ctx.Request.Context(), userID, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PagedResponse{
		Items:      notes,
		Page:       page.Page,
		Size:       page.Size,
		TotalCount: total,
	})
}

func (c *PlannerController) GetNote(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	note, err := c.plannerService.GetNote(ctx.Request.Context(), id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, note)
}

func (c *PlannerController) CreateNote(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.PlannerNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	note, err := c.plannerService.CreateNote(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, note)
}

func (c *PlannerController) UpdateNote(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.PlannerNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	note, err := c.plannerService.UpdateNote(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, note)
}

func (c *PlannerController) DeleteNote(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.plannerService.DeleteNote(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Note deleted"})
}

func (c *PlannerController) ListGrades(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	grades, err := c.plannerService.ListGrades(ctx.Request.Context(), userID, ctx.Query("courseCode"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grades)
}

func (c *PlannerController) GetGrade(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	grade, err := c.plannerService.GetGrade(ctx.Request.Context(), id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grade)
}

func (c *PlannerController) CreateGrade(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	grade, err := c.plannerService.CreateGrade(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, grade)
}

func (c *PlannerController) UpdateGrade(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	grade, err := c.plannerService.UpdateGrade(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grade)
}

func (c *PlannerController) DeleteGrade(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.plannerService.DeleteGrade(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Grade deleted"})
}

// bindError writes the standard validation failure response
func bindError(ctx *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
		WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
