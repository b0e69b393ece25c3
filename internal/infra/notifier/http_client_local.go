//go:build !gcloud

package notifier

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// newHTTPClient creates a plain traced HTTP client for local development.
func newHTTPClient(_ string) *http.Client {
	return &http.Client{
		Timeout:   webhookTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
