// Package notifier delivers fired reminders to the user.
package notifier

import "github.com/KasumiMercury/primind-habit-reminder/internal/domain"

// New returns a webhook notifier when url is set, or a log notifier otherwise.
func New(url string, maxRetries int) domain.Notifier {
	if url == "" {
		return NewLogNotifier()
	}
	return NewWebhookNotifier(url, maxRetries)
}
