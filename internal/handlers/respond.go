package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// ErrorResponse is the generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondServiceError maps a service-layer error to an HTTP response. Handlers
// with more specific messaging do their own errors.Is checks before falling
// back to this.
func respondServiceError(c *gin.Context, err error, logMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := http.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, msg = http.StatusNotFound, "Resource not found"
	case errors.Is(err, apperrors.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrOutOfRangeWordCount):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrPricingConfigMissing):
		status, msg = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, apperrors.ErrHierarchyUnassigned):
		status, msg = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, apperrors.ErrDuplicate):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, apperrors.ErrStaleVersion):
		status, msg = http.StatusConflict, "Stale version: reload and retry"
	case errors.Is(err, apperrors.ErrConflict):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status, msg = http.StatusForbidden, "Forbidden"
	case errors.Is(err, apperrors.ErrRateUnavailable):
		status, msg = http.StatusServiceUnavailable, "Exchange rate unavailable"
	}

	if status == http.StatusInternalServerError {
		logger.Error(logMsg, slog.String("error", err.Error()))
	} else {
		logger.Warn(logMsg, slog.String("error", err.Error()))
	}
	c.JSON(status, ErrorResponse{Error: msg})
}
