package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"

	"docvault_backend/internal/algorithms"
	"docvault_backend/internal/email"
	"docvault_backend/internal/logger"
	"docvault_backend/internal/models"
	"docvault_backend/internal/repositories"
	"docvault_backend/internal/services/dto"
	"docvault_backend/internal/utils"
)

// How many due schedule rows one processor invocation consumes.
const processBatchSize = 100

// Dashboard query defaults.
const (
	defaultUpcomingDays  = 30
	defaultUpcomingLimit = 50
)

// ExpirationService is the expiration/due-date notification engine:
// it builds notification schedules from threshold tables, reconciles
// them against the store, turns due rows into bell notifications and
// emails, and covers the same-day gap on demand.
//
// The write-path operations return soft result structs instead of
// errors: a broken notification schedule must never fail the document
// save that triggered it.
type ExpirationService interface {
	ScheduleNotifications(documentID string, expirationDate time.Time, userID string) *dto.ScheduleResult
	ScheduleDueDateNotifications(documentID string, dueDate time.Time, userID string) *dto.ScheduleResult
	CancelNotifications(documentID string) *dto.CancelResult
	CancelNotificationsForTarget(documentID, target string) *dto.CancelResult
	ToggleTracking(documentID string, enabled bool, userID string) *dto.ToggleResult

	GetUpcomingExpirations(userID string, criteria dto.UpcomingCriteria) ([]dto.ExpiringDocument, error)

	ProcessScheduledNotifications() *dto.ProcessResult
	CheckAndCreateUrgentNotifications(userID string) *dto.UrgentResult
}

type expirationService struct {
	documentRepo repositories.DocumentRepository
	scheduleRepo repositories.ScheduledNotificationRepository
	notifRepo    repositories.UserNotificationRepository
	userRepo     repositories.UserRepository
	mailer       email.NotificationMailer

	// injectable clock, pinned in tests
	now func() time.Time
}

func NewExpirationService(
	documentRepo repositories.DocumentRepository,
	scheduleRepo repositories.ScheduledNotificationRepository,
	notifRepo repositories.UserNotificationRepository,
	userRepo repositories.UserRepository,
	mailer email.NotificationMailer,
) ExpirationService {
	return &expirationService{
		documentRepo: documentRepo,
		scheduleRepo: scheduleRepo,
		notifRepo:    notifRepo,
		userRepo:     userRepo,
		mailer:       mailer,
		now:          time.Now,
	}
}

// ---------------- Schedule building & reconciling ----------------

func (s *expirationService) ScheduleNotifications(documentID string, expirationDate time.Time, userID string) *dto.ScheduleResult {
	return s.replaceSchedule(documentID, userID, algorithms.TargetExpiration, expirationDate)
}

func (s *expirationService) ScheduleDueDateNotifications(documentID string, dueDate time.Time, userID string) *dto.ScheduleResult {
	return s.replaceSchedule(documentID, userID, algorithms.TargetDueDate, dueDate)
}

// replaceSchedule recomputes and fully replaces one target kind's
// schedule. An empty builder result still runs the delete, so stale
// future rows never survive a date change.
func (s *expirationService) replaceSchedule(documentID, userID, target string, targetDate time.Time) *dto.ScheduleResult {
	entries := algorithms.BuildSchedule(target, targetDate, s.now())

	rows := make([]*models.ScheduledNotification, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &models.ScheduledNotification{
			DocumentID:       documentID,
			UserID:           userID,
			NotificationType: e.Type,
			ScheduledFor:     e.ScheduledFor,
		})
	}

	if err := s.scheduleRepo.ReplaceForDocument(documentID, target, rows); err != nil {
		logger.Error("failed to replace notification schedule",
			"document_id", documentID, "target", target, "error", err)
		return &dto.ScheduleResult{Success: false, Error: "failed to persist notification schedule"}
	}

	return &dto.ScheduleResult{Success: true, ScheduledCount: len(rows)}
}

func (s *expirationService) CancelNotifications(documentID string) *dto.CancelResult {
	if err := s.scheduleRepo.DeleteByDocument(documentID); err != nil {
		logger.Error("failed to cancel scheduled notifications",
			"document_id", documentID, "error", err)
		return &dto.CancelResult{Success: false, Error: "failed to cancel scheduled notifications"}
	}
	return &dto.CancelResult{Success: true}
}

func (s *expirationService) CancelNotificationsForTarget(documentID, target string) *dto.CancelResult {
	if err := s.scheduleRepo.DeleteByDocumentAndPrefix(documentID, target); err != nil {
		logger.Error("failed to cancel scheduled notifications",
			"document_id", documentID, "target", target, "error", err)
		return &dto.CancelResult{Success: false, Error: "failed to cancel scheduled notifications"}
	}
	return &dto.CancelResult{Success: true}
}

// ToggleTracking reconciles both tracking flags and the persisted
// schedule with the requested state. Safe to call repeatedly; the last
// call wins.
func (s *expirationService) ToggleTracking(documentID string, enabled bool, userID string) *dto.ToggleResult {
	doc, err := s.documentRepo.FindByID(documentID)
	if err != nil {
		logger.Warn("toggle tracking on unknown document", "document_id", documentID, "error", err)
		return &dto.ToggleResult{Success: false, Error: "document not found"}
	}

	if !enabled {
		doc.ExpirationTrackingEnabled = false
		doc.DueDateTrackingEnabled = false
		if err := s.documentRepo.Update(doc); err != nil {
			logger.Error("failed to disable tracking", "document_id", documentID, "error", err)
			return &dto.ToggleResult{Success: false, Error: "failed to update document"}
		}
		res := s.CancelNotifications(documentID)
		return &dto.ToggleResult{Success: res.Success, Error: res.Error}
	}

	// A tracking flag without a date is meaningless, so enabling only
	// turns on the flags whose dates exist.
	doc.ExpirationTrackingEnabled = doc.ExpirationDate != nil
	doc.DueDateTrackingEnabled = doc.DueDate != nil
	if err := s.documentRepo.Update(doc); err != nil {
		logger.Error("failed to enable tracking", "document_id", documentID, "error", err)
		return &dto.ToggleResult{Success: false, Error: "failed to update document"}
	}

	recipient := userID
	if recipient == "" {
		recipient = doc.UploadedByID
	}

	if doc.ExpirationDate != nil {
		if res := s.ScheduleNotifications(documentID, *doc.ExpirationDate, recipient); !res.Success {
			return &dto.ToggleResult{Success: false, Error: res.Error}
		}
	}
	if doc.DueDate != nil {
		if res := s.ScheduleDueDateNotifications(documentID, *doc.DueDate, recipient); !res.Success {
			return &dto.ToggleResult{Success: false, Error: res.Error}
		}
	}

	return &dto.ToggleResult{Success: true}
}

// ---------------- Dashboard reads ----------------

func (s *expirationService) GetUpcomingExpirations(userID string, criteria dto.UpcomingCriteria) ([]dto.ExpiringDocument, error) {
	if criteria.Days <= 0 {
		criteria.Days = defaultUpcomingDays
	}
	if criteria.Limit <= 0 {
		criteria.Limit = defaultUpcomingLimit
	}

	now := s.now()
	docs, err := s.documentRepo.FindUpcomingExpirations(userID, now, repositories.UpcomingCriteria{
		Days:           criteria.Days,
		Limit:          criteria.Limit,
		IncludeExpired: criteria.IncludeExpired,
		OrganizationID: criteria.OrganizationID,
	})
	if err != nil {
		logger.Error("failed to load upcoming expirations", "user_id", userID, "error", err)
		return []dto.ExpiringDocument{}, err
	}

	out := make([]dto.ExpiringDocument, 0, len(docs))
	for _, doc := range docs {
		if doc.ExpirationDate == nil {
			continue
		}
		daysUntil := utils.DaysUntilExpiration(*doc.ExpirationDate, now)
		out = append(out, dto.ExpiringDocument{
			ID:               doc.ID,
			Name:             doc.Name,
			DocumentCategory: doc.DocumentCategory,
			DocumentSubtype:  doc.DocumentSubtype,
			ExpirationDate:   *doc.ExpirationDate,
			DaysUntil:        daysUntil,
			Status:           utils.ExpirationStatus(daysUntil),
		})
	}
	return out, nil
}

// ---------------- Batch processing ----------------

// ProcessScheduledNotifications drains due schedule rows: for each, a
// bell notification is created unless one for the same day already
// exists, an email goes out when the user allows it, and the row is
// stamped sent exactly once. Rows are handled sequentially, most
// overdue first, and one broken row never aborts the batch.
func (s *expirationService) ProcessScheduledNotifications() *dto.ProcessResult {
	result := &dto.ProcessResult{}
	now := s.now()

	due, err := s.scheduleRepo.FindDueUnsent(now, processBatchSize)
	if err != nil {
		logger.Error("failed to fetch due scheduled notifications", "error", err)
		return result
	}

	for i := range due {
		row := &due[i]
		if err := s.processRow(row, now, result); err != nil {
			result.Errors++
			logger.Error("failed to process scheduled notification",
				"schedule_id", row.ID,
				"document_id", row.DocumentID,
				"type", row.NotificationType,
				"error", err)
		}
		result.Processed++

		// Stamped even after a failure: a permanently broken row must
		// not be retried forever.
		if err := s.scheduleRepo.MarkSent(row.ID, now); err != nil {
			logger.Error("failed to mark scheduled notification sent",
				"schedule_id", row.ID, "error", err)
		}
	}

	logger.Info("scheduled notification batch complete",
		"processed", result.Processed,
		"created", result.Created,
		"emails_sent", result.EmailsSent,
		"errors", result.Errors)
	return result
}

func (s *expirationService) processRow(row *models.ScheduledNotification, now time.Time, result *dto.ProcessResult) error {
	doc, err := s.documentRepo.FindByID(row.DocumentID)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			// Dangling row for a deleted document: cleanup, not an error.
			return nil
		}
		return err
	}

	user, err := s.userRepo.FindByID(row.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return err
	}

	targetDate := doc.ExpirationDate
	if strings.HasPrefix(row.NotificationType, algorithms.TargetDueDate) {
		targetDate = doc.DueDate
	}
	var date time.Time
	if targetDate != nil {
		date = *targetDate
	}

	content := algorithms.GenerateNotificationContent(row.NotificationType, algorithms.ContentInput{
		DocumentName: doc.Name,
		Category:     doc.DocumentCategory,
		Subtype:      doc.DocumentSubtype,
		Date:         date,
	})

	exists, err := s.notifRepo.ExistsForDay(row.UserID, row.DocumentID, row.NotificationType, now)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.createUserNotification(row.UserID, doc, row.NotificationType, content, date); err != nil {
			return err
		}
		result.Created++
	}

	// Email is best effort and independent of the bell notification:
	// a transport failure is logged and counted nowhere.
	if user.WantsEmail() && user.Email != "" {
		mail := email.NotificationEmail{
			UserEmail:        user.Email,
			UserName:         user.Name,
			DocumentName:     doc.Name,
			NotificationType: row.NotificationType,
			Title:            content.Title,
			Message:          content.Message,
			Date:             date,
		}
		if err := s.mailer.SendNotificationEmail(mail); err != nil {
			logger.Warn("notification email failed",
				"user_id", user.ID, "document_id", doc.ID, "error", err)
		} else {
			result.EmailsSent++
		}
	}

	return nil
}

func (s *expirationService) createUserNotification(userID string, doc *models.Document, notificationType string, content algorithms.Content, date time.Time) error {
	payload, _ := json.Marshal(map[string]interface{}{
		"document_id": doc.ID,
		"target_date": date.Format("2006-01-02"),
	})

	return s.notifRepo.Create(&models.UserNotification{
		UserID:     userID,
		DocumentID: doc.ID,
		Type:       notificationType,
		Title:      content.Title,
		Message:    content.Message,
		Data:       datatypes.JSON(payload),
	})
}

// ---------------- Urgent same-day reconciliation ----------------

// CheckAndCreateUrgentNotifications closes the gap between batch runs:
// any of the user's tracked documents due or expiring today-or-earlier
// gets a bell notification unless one of that type already exists
// today. No email is sent from this path. Never fails the caller.
func (s *expirationService) CheckAndCreateUrgentNotifications(userID string) *dto.UrgentResult {
	result := &dto.UrgentResult{}
	now := s.now()
	today := utils.StartOfDay(now)
	cutoff := today.AddDate(0, 0, 1)

	docs, err := s.documentRepo.FindDueOrExpiring(userID, cutoff)
	if err != nil {
		logger.Error("urgent notification check failed", "user_id", userID, "error", err)
		return result
	}

	for i := range docs {
		doc := &docs[i]
		notificationType, date := urgentNotificationType(doc, today)
		if notificationType == "" {
			continue
		}

		exists, err := s.notifRepo.ExistsForDay(userID, doc.ID, notificationType, now)
		if err != nil {
			logger.Error("urgent dedup check failed",
				"user_id", userID, "document_id", doc.ID, "error", err)
			continue
		}
		if exists {
			continue
		}

		content := algorithms.GenerateNotificationContent(notificationType, algorithms.ContentInput{
			DocumentName: doc.Name,
			Category:     doc.DocumentCategory,
			Subtype:      doc.DocumentSubtype,
			Date:         date,
		})
		if err := s.createUserNotification(userID, doc, notificationType, content, date); err != nil {
			logger.Error("failed to create urgent notification",
				"user_id", userID, "document_id", doc.ID, "error", err)
			continue
		}
		result.Created++
	}

	return result
}

// urgentNotificationType picks the notification for a document already
// at or past a tracked date. Expiration wins when both dates qualify.
func urgentNotificationType(doc *models.Document, today time.Time) (string, time.Time) {
	if doc.ExpirationTrackingEnabled && doc.ExpirationDate != nil {
		day := utils.StartOfDay(*doc.ExpirationDate)
		if day.Equal(today) {
			return algorithms.TypeExpirationToday, *doc.ExpirationDate
		}
		if day.Before(today) {
			return algorithms.TypeDocumentExpired, *doc.ExpirationDate
		}
	}
	if doc.DueDateTrackingEnabled && doc.DueDate != nil {
		day := utils.StartOfDay(*doc.DueDate)
		if day.Equal(today) {
			return algorithms.TypeDueDateToday, *doc.DueDate
		}
		if day.Before(today) {
			return algorithms.TypePastDue, *doc.DueDate
		}
	}
	return "", time.Time{}
}
