package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeAdminEmail = "notification:admin_email"

// QueueEnqueuer schedules emails on an asynq queue for the notification worker.
type QueueEnqueuer struct {
	Client *asynq.Client
}

func NewAdminEmailTask(email Email) (*asynq.Task, error) {
	b, err := json.Marshal(email)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAdminEmail, b, asynq.MaxRetry(3)), nil
}

func (q QueueEnqueuer) EnqueueEmail(ctx context.Context, email Email) error {
	task, err := NewAdminEmailTask(email)
	if err != nil {
		return fmt.Errorf("build email task: %w", err)
	}
	if _, err := q.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue email task: %w", err)
	}
	return nil
}

// HandleAdminEmailTask delivers a queued email with sender. Returning an error
// lets asynq retry the task.
func HandleAdminEmailTask(sender Sender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var email Email
		if err := json.Unmarshal(task.Payload(), &email); err != nil {
			return fmt.Errorf("invalid email payload: %v: %w", err, asynq.SkipRetry)
		}
		return sender.Send(ctx, email)
	}
}
