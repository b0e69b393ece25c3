package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

func testNotification() domain.Notification {
	return domain.Notification{
		UserID:            "user-1",
		Tracker:           domain.TrackerHydration,
		Title:             "Time to hydrate",
		Body:              "Drink some water",
		RecommendedAmount: 250,
	}
}

func newTestNotifier(url string, maxRetries int) *WebhookNotifier {
	n := NewWebhookNotifier(url, maxRetries)
	n.initialBackoff = time.Millisecond
	return n
}

func TestWebhookNotifier_Success(t *testing.T) {
	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := newTestNotifier(server.URL, 3)
	if err := n.Deliver(context.Background(), testNotification()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.UserID != "user-1" || got.Tracker != "hydration" || got.RecommendedAmount != 250 {
		t.Errorf("unexpected payload: %+v", got)
	}
	if got.SentAt.IsZero() {
		t.Error("sent_at should be set")
	}
}

func TestWebhookNotifier_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := newTestNotifier(server.URL, 3)
	if err := n.Deliver(context.Background(), testNotification()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestWebhookNotifier_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := newTestNotifier(server.URL, 2)
	if err := n.Deliver(context.Background(), testNotification()); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestWebhookNotifier_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	n := newTestNotifier(server.URL, 5)
	if err := n.Deliver(context.Background(), testNotification()); err == nil {
		t.Fatal("expected error for forbidden response")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 attempt, got %d", got)
	}
}

func TestNew(t *testing.T) {
	if _, ok := New("", 3).(*LogNotifier); !ok {
		t.Error("empty url should select the log notifier")
	}
	if _, ok := New("http://localhost:9999/hook", 3).(*WebhookNotifier); !ok {
		t.Error("url should select the webhook notifier")
	}
	if err := NewLogNotifier().Deliver(context.Background(), testNotification()); err != nil {
		t.Errorf("log notifier should never fail: %v", err)
	}
}
