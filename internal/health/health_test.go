package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(_ context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", p.err)
}

type stubCounter int

func (c stubCounter) ActiveReminders() int {
	return int(c)
}

func TestReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantHealth Status
	}{
		{name: "healthy", wantStatus: http.StatusOK, wantHealth: StatusHealthy},
		{name: "redis down", pingErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable, wantHealth: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(stubPinger{err: tt.pingErr}, stubCounter(3), "test")

			r := gin.New()
			r.GET("/health/ready", checker.ReadyHandler())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body HealthStatus
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Status != tt.wantHealth {
				t.Errorf("Status = %q, want %q", body.Status, tt.wantHealth)
			}
			if body.ActiveReminders != 3 {
				t.Errorf("ActiveReminders = %d, want 3", body.ActiveReminders)
			}
			if body.Checks["redis"].Status != tt.wantHealth {
				t.Errorf("redis check = %+v", body.Checks["redis"])
			}
		})
	}
}

func TestLiveHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health/live", NewChecker(nil, nil, "test").LiveHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
