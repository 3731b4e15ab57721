package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"docvault_backend/internal/models"
)

var ErrDocumentNotFound = errors.New("document not found")

// Search criteria for a user's document list.
type DocumentCriteria struct {
	Category       string `form:"category"`
	OrganizationID string `form:"organization_id"`
	Page           int    `form:"page" binding:"min=0"`
	PageSize       int    `form:"page_size" binding:"min=0,max=100"`
}

// Criteria for the upcoming-expirations dashboard query.
type UpcomingCriteria struct {
	Days           int
	Limit          int
	IncludeExpired bool
	OrganizationID string
}

type DocumentRepository interface {
	Create(doc *models.Document) error
	FindByID(id string) (*models.Document, error)
	FindByOwner(ownerID string, criteria DocumentCriteria) ([]models.Document, int64, error)
	Update(doc *models.Document) error
	Delete(id string) error

	// FindDueOrExpiring returns the owner's tracked documents whose
	// expiration or due date falls before the cutoff instant.
	FindDueOrExpiring(ownerID string, cutoff time.Time) ([]models.Document, error)

	// FindUpcomingExpirations returns tracked documents expiring within
	// the criteria window, soonest first.
	FindUpcomingExpirations(ownerID string, now time.Time, criteria UpcomingCriteria) ([]models.Document, error)
}

type DocumentRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

func (r *DocumentRepositoryImpl) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

func (r *DocumentRepositoryImpl) FindByID(id string) (*models.Document, error) {
	var doc models.Document
	err := r.db.First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepositoryImpl) FindByOwner(ownerID string, criteria DocumentCriteria) ([]models.Document, int64, error) {
	var docs []models.Document
	query := r.db.Where("uploaded_by_id = ?", ownerID)

	if criteria.Category != "" {
		query = query.Where("document_category = ?", criteria.Category)
	}
	if criteria.OrganizationID != "" {
		query = query.Where("organization_id = ?", criteria.OrganizationID)
	}

	var total int64
	if err := query.Model(&models.Document{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&docs).Error

	return docs, total, err
}

func (r *DocumentRepositoryImpl) Update(doc *models.Document) error {
	return r.db.Save(doc).Error
}

func (r *DocumentRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepositoryImpl) FindDueOrExpiring(ownerID string, cutoff time.Time) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Where("uploaded_by_id = ?", ownerID).
		Where(
			r.db.Where("expiration_tracking_enabled = ? AND expiration_date IS NOT NULL AND expiration_date < ?", true, cutoff).
				Or("due_date_tracking_enabled = ? AND due_date IS NOT NULL AND due_date < ?", true, cutoff),
		).
		Find(&docs).Error
	return docs, err
}

func (r *DocumentRepositoryImpl) FindUpcomingExpirations(ownerID string, now time.Time, criteria UpcomingCriteria) ([]models.Document, error) {
	horizon := now.AddDate(0, 0, criteria.Days)

	query := r.db.Where("uploaded_by_id = ?", ownerID).
		Where("expiration_tracking_enabled = ?", true).
		Where("expiration_date IS NOT NULL").
		Where("expiration_date <= ?", horizon)

	if !criteria.IncludeExpired {
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		query = query.Where("expiration_date >= ?", dayStart)
	}
	if criteria.OrganizationID != "" {
		query = query.Where("organization_id = ?", criteria.OrganizationID)
	}

	var docs []models.Document
	err := query.Order("expiration_date ASC").
		Limit(criteria.Limit).
		Find(&docs).Error
	return docs, err
}
