package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps a ledger error onto an HTTP status code.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnknownAccount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrStorageBusy):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error body. Server-side failures are logged at
// Error level and their details are not echoed to the client.
func respondError(c *gin.Context, logger *slog.Logger, err error, failureMsg string) {
	status := statusForError(err)
	switch {
	case status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable:
		logger.Error(failureMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failureMsg})
	case status == http.StatusServiceUnavailable:
		logger.Warn(failureMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Storage is busy, please retry"})
	default:
		logger.Warn(failureMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
	}
}
