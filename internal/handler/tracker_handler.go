package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/tracker"
)

type TrackerHandler struct {
	service *tracker.Service
}

func NewTrackerHandler(service *tracker.Service) *TrackerHandler {
	return &TrackerHandler{
		service: service,
	}
}

// Register mounts the tracker routes under /users/:userID/trackers/:tracker.
func (h *TrackerHandler) Register(rg *gin.RouterGroup) {
	t := rg.Group("/users/:userID/trackers/:tracker")
	{
		t.GET("/records", h.ListRecords)
		t.POST("/records", h.AddRecord)
		t.PATCH("/records/:recordID", h.EditRecord)
		t.DELETE("/records/:recordID", h.DeleteRecord)

		t.GET("/goal", h.GetGoal)
		t.PUT("/goal", h.SetGoal)

		t.GET("/reminder", h.GetReminder)
		t.PUT("/reminder", h.UpdateReminder)
		t.DELETE("/reminder", h.DisableReminder)

		t.GET("/recommendation", h.Recommendation)
		t.GET("/recommendation/manual", h.ManualRecommendation)
		t.GET("/schedule", h.Schedule)
	}
}

type addRecordRequest struct {
	Amount    float64    `json:"amount"`
	Note      string     `json:"note"`
	Timestamp *time.Time `json:"timestamp"`
}

type editRecordRequest struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

type setGoalRequest struct {
	DailyGoal float64 `json:"daily_goal"`
}

func (h *TrackerHandler) ListRecords(c *gin.Context) {
	records, err := h.service.ListRecords(c.Request.Context(), c.Param("userID"), c.Param("tracker"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]RecordResponse, 0, len(records))
	for i := range records {
		resp = append(resp, newRecordResponse(&records[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TrackerHandler) AddRecord(c *gin.Context) {
	ctx := c.Request.Context()

	var req addRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "request unmarshal failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	record, err := h.service.AddRecord(ctx, c.Param("userID"), c.Param("tracker"), req.Amount, req.Note, req.Timestamp)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRecordResponse(record))
}

func (h *TrackerHandler) EditRecord(c *gin.Context) {
	ctx := c.Request.Context()

	var req editRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	record, err := h.service.EditRecord(ctx, c.Param("userID"), c.Param("tracker"), c.Param("recordID"), req.Amount, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecordResponse(record))
}

func (h *TrackerHandler) DeleteRecord(c *gin.Context) {
	if err := h.service.DeleteRecord(c.Request.Context(), c.Param("userID"), c.Param("tracker"), c.Param("recordID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrackerHandler) GetGoal(c *gin.Context) {
	goal, err := h.service.DailyGoal(c.Request.Context(), c.Param("userID"), c.Param("tracker"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, GoalResponse{Tracker: c.Param("tracker"), DailyGoal: goal})
}

func (h *TrackerHandler) SetGoal(c *gin.Context) {
	var req setGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.service.SetDailyGoal(c.Request.Context(), c.Param("userID"), c.Param("tracker"), req.DailyGoal); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, GoalResponse{Tracker: c.Param("tracker"), DailyGoal: req.DailyGoal})
}

func (h *TrackerHandler) GetReminder(c *gin.Context) {
	status, err := h.service.ReminderStatus(c.Request.Context(), c.Param("userID"), c.Param("tracker"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *TrackerHandler) UpdateReminder(c *gin.Context) {
	ctx := c.Request.Context()

	var settings domain.ReminderSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		slog.WarnContext(ctx, "request unmarshal failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	status, err := h.service.UpdateReminderSettings(ctx, c.Param("userID"), c.Param("tracker"), settings)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *TrackerHandler) DisableReminder(c *gin.Context) {
	if err := h.service.DisableReminder(c.Request.Context(), c.Param("userID"), c.Param("tracker")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrackerHandler) Recommendation(c *gin.Context) {
	var weatherFactor float64
	if raw := c.Query("weather"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			respondError(c, http.StatusBadRequest, "validation_error", "weather must be a positive number")
			return
		}
		weatherFactor = parsed
	}

	var activity domain.ActivityLevel
	if raw := c.Query("activity"); raw != "" {
		parsed, err := domain.ParseActivityLevel(raw)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		activity = parsed
	}

	result, err := h.service.Recommendation(c.Request.Context(), c.Param("userID"), c.Param("tracker"), weatherFactor, activity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TrackerHandler) ManualRecommendation(c *gin.Context) {
	intervalMinutes, err := strconv.Atoi(c.Query("interval"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "interval must be an integer number of minutes")
		return
	}

	rec, err := h.service.ManualRecommendation(c.Request.Context(), c.Param("userID"), c.Param("tracker"), intervalMinutes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *TrackerHandler) Schedule(c *gin.Context) {
	times, err := h.service.DailySchedule(c.Request.Context(), c.Param("userID"), c.Param("tracker"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if times == nil {
		times = []time.Time{}
	}
	c.JSON(http.StatusOK, ScheduleResponse{Tracker: c.Param("tracker"), Times: times})
}
