package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planora/planora/internal/app/models/dto"
	"github.com/planora/planora/internal/pkg/apperrors"
	"github.com/planora/planora/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Every
// controller funnels its failures through here so the wire format and
// status codes stay uniform.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrFileNotFound),
		errors.Is(err, apperrors.ErrFlashcardNotFound),
		errors.Is(err, apperrors.ErrQuizNotFound),
		errors.Is(err, apperrors.ErrSummaryNotFound),
		errors.Is(err, apperrors.ErrScheduleNotFound),
		errors.Is(err, apperrors.ErrNoteNotFound),
		errors.Is(err, apperrors.ErrGradeNotFound),
		errors.Is(err, apperrors.ErrGenerationNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")

	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeUnauthorized, "Permission denied")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")

	case errors.Is(err, apperrors.ErrStreamAlreadyActive):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceInvalid, "A chat stream is already in flight")

	case errors.Is(err, apperrors.ErrEmptyMessage),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrGenerationKind):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, firstMessage(err, "Invalid request"))

	case errors.Is(err, apperrors.ErrRateLimited):
		respond(c, http.StatusTooManyRequests, dto.ErrorCodeRateLimited, "Generation endpoint rate limit reached, retry later")

	case errors.Is(err, apperrors.ErrPaymentRequired):
		respond(c, http.StatusPaymentRequired, dto.ErrorCodePaymentRequired, "Generation endpoint requires payment")

	case errors.Is(err, apperrors.ErrUpstream):
		respond(c, http.StatusBadGateway, dto.ErrorCodeGenerationUpstream, "Generation endpoint failed")

	case errors.Is(err, apperrors.ErrUnparseableOutput):
		respond(c, http.StatusBadGateway, dto.ErrorCodeGenerationParse, "Model produced unusable output")

	case errors.Is(err, apperrors.ErrConfiguration):
		respond(c, http.StatusInternalServerError, dto.ErrorCodeGenerationConfig, "Generation is not configured")

	case errors.Is(err, apperrors.ErrPersistence):
		respond(c, http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Failed to store generated content")

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// firstMessage prefers a wrapped CustomError message over the fallback
func firstMessage(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
