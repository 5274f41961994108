package services

import "context"

// NotificationLevel classifies a notification emitted by the core workflows.
type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
	NotifyWarning NotificationLevel = "warning"
)

// Notifier is the sink the line-item editor and finalization engine use to
// surface outcomes to the caller. It is decoupled from transport: the HTTP
// layer echoes messages into responses, tests record them, and everything
// is mirrored to the structured log.
type Notifier interface {
	Notify(ctx context.Context, level NotificationLevel, message string)
}
