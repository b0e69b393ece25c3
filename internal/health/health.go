package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthStatus struct {
	Status          Status                 `json:"status"`
	Version         string                 `json:"version,omitempty"`
	ActiveReminders int                    `json:"active_reminders"`
	Checks          map[string]CheckResult `json:"checks,omitempty"`
}

// Pinger is the part of the Redis client used for readiness.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// ReminderCounter reports how many reminder timers are currently armed.
type ReminderCounter interface {
	ActiveReminders() int
}

type Checker struct {
	redis     Pinger
	reminders ReminderCounter
	version   string
}

func NewChecker(redisClient Pinger, reminders ReminderCounter, version string) *Checker {
	return &Checker{
		redis:     redisClient,
		reminders: reminders,
		version:   version,
	}
}

// Check pings Redis. Armed reminder count is informational only.
func (c *Checker) Check(ctx context.Context) *HealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := &HealthStatus{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult),
	}

	if c.redis != nil {
		start := time.Now()
		if err := c.redis.Ping(checkCtx).Err(); err != nil {
			status.Status = StatusUnhealthy
			status.Checks["redis"] = CheckResult{
				Status: StatusUnhealthy,
				Error:  err.Error(),
			}
		} else {
			status.Checks["redis"] = CheckResult{
				Status:    StatusHealthy,
				LatencyMs: time.Since(start).Milliseconds(),
			}
		}
	}

	if c.reminders != nil {
		status.ActiveReminders = c.reminders.ActiveReminders()
	}

	return status
}

func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if status.Status != StatusHealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, status)
	}
}
