package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault_backend/internal/repositories"
	"docvault_backend/internal/services/dto"
	"docvault_backend/pkg/apperrors"
)

func newDocumentService(t *testing.T, now time.Time) (DocumentService, *testEnv) {
	t.Helper()
	env := newTestEnv(t, now)
	return NewDocumentService(env.documentRepo, env.svc), env
}

func TestCreateDocument_BuildsSchedule(t *testing.T) {
	now := time.Now()
	svc, env := newDocumentService(t, now)
	user := createTestUser(t, env.db)

	doc, err := svc.CreateDocument(user.ID, &dto.CreateDocumentRequest{
		Name:                      "Liability Policy",
		DocumentCategory:          "insurance",
		ExpirationDate:            now.AddDate(0, 0, 40).Format("2006-01-02"),
		ExpirationTrackingEnabled: true,
	})
	require.NoError(t, err)
	require.NotNil(t, doc.ExpirationDate)
	assert.True(t, doc.ExpirationTrackingEnabled)

	rows := scheduleRows(t, env.db, doc.ID)
	require.Len(t, rows, 6)
	for _, row := range rows {
		assert.Equal(t, user.ID, row.UserID)
	}
}

func TestCreateDocument_TrackingWithoutDateIsNormalized(t *testing.T) {
	now := time.Now()
	svc, env := newDocumentService(t, now)
	user := createTestUser(t, env.db)

	doc, err := svc.CreateDocument(user.ID, &dto.CreateDocumentRequest{
		Name:                      "Untracked",
		ExpirationTrackingEnabled: true,
	})
	require.NoError(t, err)
	assert.False(t, doc.ExpirationTrackingEnabled)
	assert.Empty(t, scheduleRows(t, env.db, doc.ID))
}

func TestUpdateDocument_ReschedulesOnDateChange(t *testing.T) {
	now := time.Now()
	svc, env := newDocumentService(t, now)
	user := createTestUser(t, env.db)

	doc, err := svc.CreateDocument(user.ID, &dto.CreateDocumentRequest{
		Name:                      "Permit",
		ExpirationDate:            now.AddDate(0, 0, 40).Format("2006-01-02"),
		ExpirationTrackingEnabled: true,
	})
	require.NoError(t, err)
	require.Len(t, scheduleRows(t, env.db, doc.ID), 6)

	newDate := now.AddDate(0, 0, 20).Format("2006-01-02")
	_, err = svc.UpdateDocument(user.ID, doc.ID, &dto.UpdateDocumentRequest{
		ExpirationDate: &newDate,
	})
	require.NoError(t, err)

	rows := scheduleRows(t, env.db, doc.ID)
	require.Len(t, rows, 5) // 15, 7, 2, 1, day-of
	assert.Equal(t, "expiration_15d", rows[0].NotificationType)
}

func TestUpdateDocument_DisableTrackingClearsOnlyThatTarget(t *testing.T) {
	now := time.Now()
	svc, env := newDocumentService(t, now)
	user := createTestUser(t, env.db)

	doc, err := svc.CreateDocument(user.ID, &dto.CreateDocumentRequest{
		Name:                      "Filing",
		ExpirationDate:            now.AddDate(0, 0, 40).Format("2006-01-02"),
		ExpirationTrackingEnabled: true,
		DueDate:                   now.AddDate(0, 0, 10).Format("2006-01-02"),
		DueDateTrackingEnabled:    true,
	})
	require.NoError(t, err)
	require.Len(t, scheduleRows(t, env.db, doc.ID), 10)

	off := false
	_, err = svc.UpdateDocument(user.ID, doc.ID, &dto.UpdateDocumentRequest{
		ExpirationTrackingEnabled: &off,
	})
	require.NoError(t, err)

	rows := scheduleRows(t, env.db, doc.ID)
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Contains(t, row.NotificationType, "due_date")
	}
}

func TestDeleteDocument_CancelsSchedule(t *testing.T) {
	now := time.Now()
	svc, env := newDocumentService(t, now)
	user := createTestUser(t, env.db)

	doc, err := svc.CreateDocument(user.ID, &dto.CreateDocumentRequest{
		Name:                      "Lease",
		ExpirationDate:            now.AddDate(0, 0, 40).Format("2006-01-02"),
		ExpirationTrackingEnabled: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, scheduleRows(t, env.db, doc.ID))

	require.NoError(t, svc.DeleteDocument(user.ID, doc.ID))

	assert.Empty(t, scheduleRows(t, env.db, doc.ID))
	_, err = svc.GetDocument(user.ID, doc.ID)
	require.Error(t, err)
}

func TestDocumentOwnership(t *testing.T) {
	now := time.Now()
	svc, env := newDocumentService(t, now)
	owner := createTestUser(t, env.db)
	intruder := createTestUser(t, env.db)

	doc, err := svc.CreateDocument(owner.ID, &dto.CreateDocumentRequest{Name: "Private"})
	require.NoError(t, err)

	_, err = svc.GetDocument(intruder.ID, doc.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 403, appErr.HTTPCode)

	err = svc.DeleteDocument(intruder.ID, doc.ID)
	require.Error(t, err)
}

func TestListDocuments(t *testing.T) {
	now := time.Now()
	svc, env := newDocumentService(t, now)
	user := createTestUser(t, env.db)
	other := createTestUser(t, env.db)

	_, err := svc.CreateDocument(user.ID, &dto.CreateDocumentRequest{Name: "Mine A"})
	require.NoError(t, err)
	_, err = svc.CreateDocument(user.ID, &dto.CreateDocumentRequest{Name: "Mine B", DocumentCategory: "tax"})
	require.NoError(t, err)
	_, err = svc.CreateDocument(other.ID, &dto.CreateDocumentRequest{Name: "Theirs"})
	require.NoError(t, err)

	response, err := svc.ListDocuments(user.ID, repositories.DocumentCriteria{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, response.Total)

	response, err = svc.ListDocuments(user.ID, repositories.DocumentCriteria{Category: "tax"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, response.Total)
	require.Len(t, response.Documents, 1)
	assert.Equal(t, "Mine B", response.Documents[0].Name)
}
