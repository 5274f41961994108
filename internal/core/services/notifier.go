package services

import (
	"context"
	"log/slog"

	portssvc "github.com/officio/business_mgmt_app/internal/core/ports/services"
	"github.com/officio/business_mgmt_app/internal/middleware"
)

// logNotifier mirrors workflow notifications onto the request-scoped
// structured log. The HTTP layer carries the message to the caller in the
// response body; this sink makes sure it also lands in the log stream.
type logNotifier struct{}

// NewLogNotifier creates a Notifier backed by the structured logger.
func NewLogNotifier() portssvc.Notifier {
	return &logNotifier{}
}

// Ensure logNotifier implements the portssvc.Notifier interface
var _ portssvc.Notifier = (*logNotifier)(nil)

func (n *logNotifier) Notify(ctx context.Context, level portssvc.NotificationLevel, message string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	switch level {
	case portssvc.NotifyError:
		logger.Error("Notification", slog.String("message", message))
	case portssvc.NotifyWarning:
		logger.Warn("Notification", slog.String("message", message))
	default:
		logger.Info("Notification", slog.String("message", message))
	}
}
