package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/planora/planora/internal/app/models/dto"
	"github.com/planora/planora/internal/app/services"
	"github.com/planora/planora/internal/middleware"
)

// FileController handles uploaded course material
type FileController struct {
	fileService services.FileService
}

// NewFileController creates a new FileController
func NewFileController(fileService services.FileService) *FileController {
	return &FileController{fileService: fileService}
}

// Upload stores a multipart file for the authenticated user
func (c *FileController) Upload(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	header, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A multipart 'file' field is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := c.fileService.Upload(ctx.Request.Context(), userID, header)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.FileResponse{
		ID:        file.ID,
		FileName:  file.FileName,
		FileSize:  file.FileSize,
		MimeType:  file.MimeType,
		CreatedAt: file.CreatedAt,
	})
}

// List returns the authenticated user's files
func (c *FileController) List(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	files, err := c.fileService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.FileResponse, 0, len(files))
	for _, file := range files {
		responses = append(responses, dto.FileResponse{
			ID:        file.ID,
			FileName:  file.FileName,
			FileSize:  file.FileSize,
			MimeType:  file.MimeType,
			CreatedAt: file.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, responses)
}

// Get returns one file owned by the authenticated user
func (c *FileController) Get(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	fileID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	file, err := c.fileService.Get(ctx.Request.Context(), fileID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FileResponse{
		ID:        file.ID,
		FileName:  file.FileName,
		FileSize:  file.FileSize,
		MimeType:  file.MimeType,
		CreatedAt: file.CreatedAt,
	})
}

// Delete removes a file and its generated artifacts
func (c *FileController) Delete(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	fileID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.fileService.Delete(ctx.Request.Context(), fileID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "File deleted"})
}

// pathID parses a numeric path parameter, writing a 400 response itself
// when the value is not a positive integer
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
