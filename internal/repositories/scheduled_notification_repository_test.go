package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"docvault_backend/internal/models"
)

func setupScheduleRepo(t *testing.T) (ScheduledNotificationRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.ScheduledNotification{}))
	return NewScheduledNotificationRepository(db), db
}

func row(documentID, notificationType string, at time.Time) *models.ScheduledNotification {
	return &models.ScheduledNotification{
		DocumentID:       documentID,
		UserID:           "user-1",
		NotificationType: notificationType,
		ScheduledFor:     at,
	}
}

func TestReplaceForDocument_PrefixScoped(t *testing.T) {
	repo, db := setupScheduleRepo(t)
	now := time.Now()

	require.NoError(t, repo.ReplaceForDocument("doc-1", "expiration", []*models.ScheduledNotification{
		row("doc-1", "expiration_30d", now.AddDate(0, 0, 10)),
		row("doc-1", "expiration_7d", now.AddDate(0, 0, 33)),
	}))
	require.NoError(t, repo.ReplaceForDocument("doc-1", "due_date", []*models.ScheduledNotification{
		row("doc-1", "due_date_7d", now.AddDate(0, 0, 3)),
	}))

	// Replacing the expiration schedule rewrites only expiration rows.
	require.NoError(t, repo.ReplaceForDocument("doc-1", "expiration", []*models.ScheduledNotification{
		row("doc-1", "expiration_1d", now.AddDate(0, 0, 5)),
	}))

	rows, err := repo.FindByDocument("doc-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var types []string
	for _, r := range rows {
		types = append(types, r.NotificationType)
	}
	assert.ElementsMatch(t, []string{"expiration_1d", "due_date_7d"}, types)

	var total int64
	require.NoError(t, db.Model(&models.ScheduledNotification{}).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}

func TestReplaceForDocument_EmptyRowsClears(t *testing.T) {
	repo, _ := setupScheduleRepo(t)
	now := time.Now()

	require.NoError(t, repo.ReplaceForDocument("doc-1", "expiration", []*models.ScheduledNotification{
		row("doc-1", "expiration_30d", now.AddDate(0, 0, 10)),
	}))

	require.NoError(t, repo.ReplaceForDocument("doc-1", "expiration", nil))

	rows, err := repo.FindByDocument("doc-1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFindDueUnsent_OrderAndLimit(t *testing.T) {
	repo, db := setupScheduleRepo(t)
	now := time.Now()

	oldest := row("doc-1", "expiration_30d", now.Add(-3*time.Hour))
	middle := row("doc-1", "expiration_7d", now.Add(-2*time.Hour))
	newest := row("doc-1", "expiration_2d", now.Add(-time.Hour))
	future := row("doc-1", "expiration_1d", now.Add(time.Hour))
	require.NoError(t, db.Create([]*models.ScheduledNotification{oldest, middle, newest, future}).Error)

	due, err := repo.FindDueUnsent(now, 2)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, oldest.ID, due[0].ID)
	assert.Equal(t, middle.ID, due[1].ID)

	// Stamped rows drop out of the due set.
	require.NoError(t, repo.MarkSent(oldest.ID, now))
	due, err = repo.FindDueUnsent(now, 10)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, middle.ID, due[0].ID)
}

func TestMarkSent_Monotonic(t *testing.T) {
	repo, db := setupScheduleRepo(t)
	now := time.Now()

	r := row("doc-1", "expiration_7d", now.Add(-time.Hour))
	require.NoError(t, db.Create(r).Error)

	first := now.Round(time.Second)
	require.NoError(t, repo.MarkSent(r.ID, first))

	var stored models.ScheduledNotification
	require.NoError(t, db.First(&stored, "id = ?", r.ID).Error)
	require.NotNil(t, stored.SentAt)

	// A second stamp does not move the timestamp.
	require.NoError(t, repo.MarkSent(r.ID, first.Add(time.Hour)))
	require.NoError(t, db.First(&stored, "id = ?", r.ID).Error)
	assert.True(t, stored.SentAt.Equal(first))
}

func TestDeleteByDocumentAndPrefix(t *testing.T) {
	repo, _ := setupScheduleRepo(t)
	now := time.Now()

	require.NoError(t, repo.ReplaceForDocument("doc-1", "", []*models.ScheduledNotification{
		row("doc-1", "expiration_30d", now.AddDate(0, 0, 10)),
		row("doc-1", "due_date_7d", now.AddDate(0, 0, 3)),
	}))

	require.NoError(t, repo.DeleteByDocumentAndPrefix("doc-1", "due_date"))

	rows, err := repo.FindByDocument("doc-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "expiration_30d", rows[0].NotificationType)

	// Idempotent on an already empty prefix.
	require.NoError(t, repo.DeleteByDocumentAndPrefix("doc-1", "due_date"))
}
