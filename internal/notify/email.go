package notify

import (
	"context"

	"go.uber.org/zap"
)

// EmailLogger is an email notifier that only logs the message. It stands in
// for a real mail provider in environments without outbound mail credentials.
type EmailLogger struct {
	from   string
	logger *zap.Logger
}

// NewEmailLogger creates the logging email notifier.
func NewEmailLogger(from string, logger *zap.Logger) *EmailLogger {
	return &EmailLogger{from: from, logger: logger}
}

// Channel implements Notifier.
func (e *EmailLogger) Channel() string { return "email" }

// Send logs the email instead of delivering it.
func (e *EmailLogger) Send(_ context.Context, msg Message) error {
	e.logger.Info("email reminder",
		zap.String("from", e.from),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
