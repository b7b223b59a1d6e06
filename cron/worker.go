package cron

import (
	"context"
	"time"

	"coolrentals/config"
	"coolrentals/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the Redis connection shared by the queue client and worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient returns the client the dispatcher enqueues admin emails with.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(QueueRedisOpt())
}

// InitNotificationWorker runs the admin email worker in background and returns
// the server so the caller can shut it down.
func InitNotificationWorker(sender notification.Sender) *asynq.Server {
	logger := zap.L().Named("notification-worker")

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				logger.Error("Admin email task failed", zap.String("type", task.Type()), zap.Error(err))
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeAdminEmail, notification.HandleAdminEmailTask(sender))

	go func() {
		logger.Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("Failed to start notification worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				// Queued emails stay in Redis; the dispatcher falls back to direct delivery on enqueue errors only.
				logger.Error("Notification worker not started; queued emails will wait")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}
