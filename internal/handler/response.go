package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type RecordResponse struct {
	ID        string    `json:"id"`
	Tracker   string    `json:"tracker"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

type GoalResponse struct {
	Tracker   string  `json:"tracker"`
	DailyGoal float64 `json:"daily_goal"`
}

type ScheduleResponse struct {
	Tracker string      `json:"tracker"`
	Times   []time.Time `json:"times"`
}

func newRecordResponse(r *domain.Record) RecordResponse {
	return RecordResponse{
		ID:        r.ID,
		Tracker:   r.Tracker.String(),
		Amount:    r.Amount,
		Timestamp: r.Timestamp,
		Note:      r.Note,
	}
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, ErrorResponse{
		Error:   errType,
		Message: message,
	})
}

var validationErrors = []error{
	domain.ErrInvalidAmount,
	domain.ErrInvalidGoal,
	domain.ErrInvalidInterval,
	domain.ErrInvalidClock,
	domain.ErrInvalidMode,
	domain.ErrInvalidActivityLevel,
	domain.ErrInvalidCalculationInput,
}

// respondServiceError maps domain errors to HTTP statuses. Anything unknown is a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownTracker):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
		return
	case errors.Is(err, domain.ErrRecordNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
		return
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}

	_ = c.Error(err)
	slog.ErrorContext(c.Request.Context(), "request processing failed",
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
	)
	respondError(c, http.StatusInternalServerError, "processing_error", "failed to process request")
}
