package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
	"github.com/KasumiMercury/primind-habit-reminder/internal/observability/tracing"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = 100 * time.Millisecond
	defaultMaxBackoff     = 2 * time.Second
	webhookTimeout        = 10 * time.Second
)

type webhookPayload struct {
	UserID            string    `json:"user_id"`
	Tracker           string    `json:"tracker"`
	Title             string    `json:"title"`
	Body              string    `json:"body"`
	RecommendedAmount float64   `json:"recommended_amount"`
	SentAt            time.Time `json:"sent_at"`
}

// WebhookNotifier posts reminders as JSON to a single endpoint. Server
// errors and transport failures are retried with exponential backoff;
// client errors are not.
type WebhookNotifier struct {
	url            string
	httpClient     *http.Client
	maxRetries     int
	initialBackoff time.Duration
}

func NewWebhookNotifier(url string, maxRetries int) *WebhookNotifier {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &WebhookNotifier{
		url:            url,
		httpClient:     newHTTPClient(url),
		maxRetries:     maxRetries,
		initialBackoff: defaultInitialBackoff,
	}
}

func (n *WebhookNotifier) Deliver(ctx context.Context, notification domain.Notification) error {
	ctx, span := tracing.StartDeliverySpan(ctx, "webhook", n.url)
	defer span.End()

	body, err := json.Marshal(webhookPayload{
		UserID:            notification.UserID,
		Tracker:           notification.Tracker.String(),
		Title:             notification.Title,
		Body:              notification.Body,
		RecommendedAmount: notification.RecommendedAmount,
		SentAt:            time.Now().UTC(),
	})
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = n.initialBackoff
	exp.Multiplier = 2
	exp.MaxInterval = defaultMaxBackoff
	exp.Reset()

	attempt := 0
	operation := func() error {
		attempt++
		if attempt > 1 {
			slog.DebugContext(ctx, "retrying reminder webhook",
				slog.String("user_id", notification.UserID),
				slog.String("tracker", notification.Tracker.String()),
				slog.Int("attempt", attempt),
			)
		}
		return n.doRequest(ctx, body)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(n.maxRetries-1)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		slog.ErrorContext(ctx, "reminder webhook delivery failed",
			slog.String("user_id", notification.UserID),
			slog.String("tracker", notification.Tracker.String()),
			slog.Int("attempts", attempt),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to deliver notification after %d attempts: %w", attempt, err)
	}

	tracing.RecordError(span, nil)
	return nil
}

func (n *WebhookNotifier) doRequest(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send reminder webhook",
			slog.String("url", n.url),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		slog.WarnContext(ctx, "unexpected status code from reminder webhook",
			slog.String("url", n.url),
			slog.Int("status_code", resp.StatusCode),
		)
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	default:
		return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}
}
