package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"docvault_backend/internal/email"
	"docvault_backend/internal/models"
	"docvault_backend/internal/repositories"
)

// setupTestDB opens an isolated in-memory database per test. The pool
// is pinned to one connection because every :memory: connection is its
// own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Document{},
		&models.ScheduledNotification{},
		&models.UserNotification{},
	))
	return db
}

// recordingMailer captures outgoing notification emails instead of
// sending them. A non-nil err simulates a transport failure.
type recordingMailer struct {
	sent []email.NotificationEmail
	err  error
}

func (m *recordingMailer) SendNotificationEmail(n email.NotificationEmail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, n)
	return nil
}

type testEnv struct {
	db           *gorm.DB
	svc          *expirationService
	mailer       *recordingMailer
	documentRepo repositories.DocumentRepository
	scheduleRepo repositories.ScheduledNotificationRepository
	notifRepo    repositories.UserNotificationRepository
	userRepo     repositories.UserRepository
}

// newTestEnv wires the engine against the test database with a pinned
// clock, so threshold arithmetic in tests is deterministic.
func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	mailer := &recordingMailer{}

	env := &testEnv{
		db:           db,
		mailer:       mailer,
		documentRepo: repositories.NewDocumentRepository(db),
		scheduleRepo: repositories.NewScheduledNotificationRepository(db),
		notifRepo:    repositories.NewUserNotificationRepository(db),
		userRepo:     repositories.NewUserRepository(db),
	}

	svc := NewExpirationService(env.documentRepo, env.scheduleRepo, env.notifRepo, env.userRepo, mailer).(*expirationService)
	svc.now = func() time.Time { return now }
	env.svc = svc
	return env
}

var testUserSeq int

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	testUserSeq++
	user := &models.User{
		Email:  fmt.Sprintf("user%d@example.com", testUserSeq),
		Name:   "Test User",
		Role:   models.UserRoleMember,
		Status: models.UserStatusActive,
	}
	user.PasswordHash = "x"
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestDocument(t *testing.T, db *gorm.DB, ownerID string, expiration, due *time.Time) *models.Document {
	t.Helper()
	doc := &models.Document{
		Name:             "Insurance Policy",
		DocumentCategory: "insurance",
		UploadedByID:     ownerID,
		ExpirationDate:   expiration,
		DueDate:          due,
	}
	doc.ExpirationTrackingEnabled = expiration != nil
	doc.DueDateTrackingEnabled = due != nil
	require.NoError(t, db.Create(doc).Error)
	return doc
}

func scheduleRows(t *testing.T, db *gorm.DB, documentID string) []models.ScheduledNotification {
	t.Helper()
	var rows []models.ScheduledNotification
	require.NoError(t, db.Where("document_id = ?", documentID).Order("scheduled_for ASC").Find(&rows).Error)
	return rows
}

func notificationRows(t *testing.T, db *gorm.DB, userID string) []models.UserNotification {
	t.Helper()
	var rows []models.UserNotification
	require.NoError(t, db.Where("user_id = ?", userID).Find(&rows).Error)
	return rows
}

func timePtr(t time.Time) *time.Time { return &t }
