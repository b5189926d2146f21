package notice

import (
	"log/slog"

	"github.com/toybox/storefront/internal/core/domain"
	"github.com/toybox/storefront/internal/core/port"
)

var _ port.Notifier = (*LogNotifier)(nil)

// LogNotifier delivers user-facing notifications to the structured log.
// Delivery is fire-and-forget, the storefront never waits on it.
type LogNotifier struct{}

func NewLogNotifier() LogNotifier {
	return LogNotifier{}
}

func (LogNotifier) Notify(n domain.Notification) {
	log := slog.With("title", n.Title, "message", n.Message)
	switch n.Severity {
	case domain.SeverityError:
		log.Error("notification")
	default:
		log.Info("notification")
	}
}
