package workers

import (
	"context"
	"time"

	"docvault_backend/internal/logger"
	"docvault_backend/internal/repositories"
	"docvault_backend/internal/services"
)

// ExpirationWorker is the external trigger for the notification
// engine: it periodically drains due schedule rows and, once a night,
// prunes old read notifications. The engine itself stays
// invocation-driven; this is just a clock.
type ExpirationWorker struct {
	service       services.ExpirationService
	notifRepo     repositories.UserNotificationRepository
	interval      time.Duration
	retentionDays int
}

func NewExpirationWorker(
	service services.ExpirationService,
	notifRepo repositories.UserNotificationRepository,
	interval time.Duration,
	retentionDays int,
) *ExpirationWorker {
	return &ExpirationWorker{
		service:       service,
		notifRepo:     notifRepo,
		interval:      interval,
		retentionDays: retentionDays,
	}
}

// Start launches the background loops. They stop when ctx is done.
func (w *ExpirationWorker) Start(ctx context.Context) {
	go w.processLoop(ctx)
	go w.cleanupLoop(ctx)
}

func (w *ExpirationWorker) processLoop(ctx context.Context) {
	logger.Info("expiration worker started", "interval", w.interval.String())
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("expiration worker stopped")
			return
		case <-ticker.C:
			result := w.service.ProcessScheduledNotifications()
			if result.Processed > 0 || result.Errors > 0 {
				logger.Info("expiration worker batch",
					"processed", result.Processed,
					"created", result.Created,
					"emails_sent", result.EmailsSent,
					"errors", result.Errors)
			}
		}
	}
}

// cleanupLoop deletes read notifications older than the retention
// window, once per day shortly after midnight.
func (w *ExpirationWorker) cleanupLoop(ctx context.Context) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 5, 0, 0, now.Location())
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			cutoff := time.Now().AddDate(0, 0, -w.retentionDays)
			deleted, err := w.notifRepo.DeleteReadOlderThan(cutoff)
			logger.WorkerLog("expiration", "cleanup", err)
			if err == nil && deleted > 0 {
				logger.Info("pruned old notifications", "deleted", deleted)
			}
		}
	}
}
