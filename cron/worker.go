package cron

import (
	"context"
	"encoding/json"
	"time"

	"ghtour/config"
	"ghtour/models"
	"ghtour/services/notification"
	"ghtour/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderQueueRedisOpt is the asynq connection shared by the worker, client and inspector.
func ReminderQueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async worker in background and returns the server so it can be shut down.
// The redis monitor stops with ctx.
func InitReminderWorker(ctx context.Context, notifSvc notification.NotificationService, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		ReminderQueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				tasks.ReminderQueue: 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, HandleReminderTask(notifSvc, logger))

	// Start Redis health monitor
	go monitorRedisConnection(ctx, logger, 10*time.Second)

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("Reminder worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err),
				)
				if attempts == maxAttempts {
					logger.Error("Reminder worker gave up; reminders will queue until restart")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	return srv
}

// HandleReminderTask delivers a booking reminder as a push to the booking's owner.
func HandleReminderTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return asynq.SkipRetry
		}
		if p.UserID == "" {
			logger.Warn("Reminder without user", zap.String("bookingId", p.BookingID))
			return nil
		}

		logger.Info("Triggering reminder", zap.String("userId", p.UserID), zap.String("bookingId", p.BookingID))

		data := map[string]string{
			"type":      "booking_reminder",
			"bookingId": p.BookingID,
			"fireDate":  p.FireDate,
			"title":     p.Title,
			"body":      p.Body,
		}

		if err := notifSvc.NotifyUser(ctx, p.UserID, p.Title, p.Body, data); err != nil {
			logger.Error("Failed to send reminder", zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger, every time.Duration) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Reminder queue redis connection lost", zap.Error(err))
			}
		}
	}
}
