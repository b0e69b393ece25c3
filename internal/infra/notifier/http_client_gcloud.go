//go:build gcloud

package notifier

import (
	"context"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/idtoken"
)

// newHTTPClient creates a traced HTTP client that attaches a GCP ID token
// for the webhook audience.
func newHTTPClient(audience string) *http.Client {
	client, err := idtoken.NewClient(context.Background(), audience)
	if err != nil {
		slog.Error("failed to create idtoken client, falling back to unauthenticated client",
			slog.String("error", err.Error()),
		)
		return &http.Client{
			Timeout:   webhookTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	client.Timeout = webhookTimeout
	client.Transport = otelhttp.NewTransport(client.Transport)
	return client
}
