package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of delivering them. It is used
// when no mail relay is configured.
type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) Send(_ context.Context, email Email) error {
	logger := s.Logger
	if logger == nil {
		logger = zap.L()
	}
	logger.Info("Email not configured, notification logged",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("text", email.Text))
	return nil
}
