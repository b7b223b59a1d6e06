package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Enqueuer hands an email to a background queue.
type Enqueuer interface {
	EnqueueEmail(ctx context.Context, email Email) error
}

// Dispatcher sends administrative notices. Delivery is attempted before
// NotifyAdmin returns unless a queue is attached, and failures are only logged.
type Dispatcher struct {
	sender     Sender
	queue      Enqueuer
	adminEmail string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewDispatcher creates a dispatcher addressing adminEmail. queue may be nil.
func NewDispatcher(sender Sender, queue Enqueuer, adminEmail string, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		sender:     sender,
		queue:      queue,
		adminEmail: adminEmail,
		timeout:    20 * time.Second,
		logger:     logger,
	}
}

func (d *Dispatcher) NotifyAdmin(ctx context.Context, msg Message) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("Notification panicked", zap.Any("error", rec), zap.String("subject", msg.Subject))
		}
	}()

	email := Email{To: d.adminEmail, Subject: msg.Subject, Text: msg.Text, HTML: msg.HTML}
	if email.HTML == "" {
		email.HTML = email.Text
	}

	// The request may already be finishing; delivery gets its own deadline.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	if d.queue != nil {
		err := d.queue.EnqueueEmail(sendCtx, email)
		if err == nil {
			d.logger.Debug("Notification queued", zap.String("subject", email.Subject))
			return
		}
		d.logger.Warn("Notification queue unavailable, sending directly", zap.Error(err))
	}

	if err := d.sender.Send(sendCtx, email); err != nil {
		d.logger.Error("Error sending notification email", zap.String("subject", email.Subject), zap.Error(err))
		return
	}
	d.logger.Info("Notification email sent to admin", zap.String("subject", email.Subject))
}
