package services

import (
	"docvault_backend/internal/algorithms"
	"docvault_backend/internal/logger"
	"docvault_backend/internal/models"
	"docvault_backend/internal/repositories"
	"docvault_backend/internal/services/dto"
	"docvault_backend/internal/utils"
	"docvault_backend/pkg/apperrors"
)

// DocumentService owns document metadata and is the upstream of the
// notification engine: every save that touches a tracked date or a
// tracking flag reconciles the schedule, and a delete cancels it.
type DocumentService interface {
	CreateDocument(userID string, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	UpdateDocument(userID, documentID string, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	GetDocument(userID, documentID string) (*dto.DocumentResponse, error)
	ListDocuments(userID string, criteria repositories.DocumentCriteria) (*dto.DocumentListResponse, error)
	DeleteDocument(userID, documentID string) error
}

type documentService struct {
	documentRepo repositories.DocumentRepository
	expiration   ExpirationService
}

func NewDocumentService(documentRepo repositories.DocumentRepository, expiration ExpirationService) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		expiration:   expiration,
	}
}

func (s *documentService) CreateDocument(userID string, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	doc := &models.Document{
		Name:             req.Name,
		DocumentCategory: req.DocumentCategory,
		DocumentSubtype:  req.DocumentSubtype,
		OrganizationID:   req.OrganizationID,
		UploadedByID:     userID,
		ExpirationDate:   utils.ParseExpirationDate(req.ExpirationDate),
		DueDate:          utils.ParseExpirationDate(req.DueDate),
	}
	doc.ExpirationTrackingEnabled = req.ExpirationTrackingEnabled && doc.ExpirationDate != nil
	doc.DueDateTrackingEnabled = req.DueDateTrackingEnabled && doc.DueDate != nil

	if err := s.documentRepo.Create(doc); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	s.reconcileSchedules(doc)

	return buildDocumentResponse(doc), nil
}

func (s *documentService) UpdateDocument(userID, documentID string, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := s.ownedDocument(userID, documentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doc.Name = *req.Name
	}
	if req.DocumentCategory != nil {
		doc.DocumentCategory = *req.DocumentCategory
	}
	if req.DocumentSubtype != nil {
		doc.DocumentSubtype = *req.DocumentSubtype
	}

	datesChanged := false
	if req.ExpirationDate != nil {
		doc.ExpirationDate = utils.ParseExpirationDate(*req.ExpirationDate)
		datesChanged = true
	}
	if req.DueDate != nil {
		doc.DueDate = utils.ParseExpirationDate(*req.DueDate)
		datesChanged = true
	}
	if req.ExpirationTrackingEnabled != nil {
		doc.ExpirationTrackingEnabled = *req.ExpirationTrackingEnabled
		datesChanged = true
	}
	if req.DueDateTrackingEnabled != nil {
		doc.DueDateTrackingEnabled = *req.DueDateTrackingEnabled
		datesChanged = true
	}

	// Tracking a missing date is meaningless; normalize before saving.
	doc.ExpirationTrackingEnabled = doc.ExpirationTrackingEnabled && doc.ExpirationDate != nil
	doc.DueDateTrackingEnabled = doc.DueDateTrackingEnabled && doc.DueDate != nil

	if err := s.documentRepo.Update(doc); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	if datesChanged {
		s.reconcileSchedules(doc)
	}

	return buildDocumentResponse(doc), nil
}

func (s *documentService) GetDocument(userID, documentID string) (*dto.DocumentResponse, error) {
	doc, err := s.ownedDocument(userID, documentID)
	if err != nil {
		return nil, err
	}
	return buildDocumentResponse(doc), nil
}

func (s *documentService) ListDocuments(userID string, criteria repositories.DocumentCriteria) (*dto.DocumentListResponse, error) {
	docs, total, err := s.documentRepo.FindByOwner(userID, criteria)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	responses := make([]*dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, buildDocumentResponse(&docs[i]))
	}
	return &dto.DocumentListResponse{Documents: responses, Total: total}, nil
}

func (s *documentService) DeleteDocument(userID, documentID string) error {
	if _, err := s.ownedDocument(userID, documentID); err != nil {
		return err
	}

	if res := s.expiration.CancelNotifications(documentID); !res.Success {
		// Degraded but deliberate: the delete proceeds, the processor
		// cleans up any dangling schedule rows it finds later.
		logger.Warn("failed to cancel schedule before document delete",
			"document_id", documentID, "error", res.Error)
	}

	if err := s.documentRepo.Delete(documentID); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// reconcileSchedules brings the persisted schedule in line with the
// document's current dates and flags. Scheduling failures are logged,
// never surfaced: the document save already succeeded.
func (s *documentService) reconcileSchedules(doc *models.Document) {
	owner := doc.UploadedByID

	if doc.ExpirationTrackingEnabled && doc.ExpirationDate != nil {
		if res := s.expiration.ScheduleNotifications(doc.ID, *doc.ExpirationDate, owner); !res.Success {
			logger.Warn("expiration schedule degraded", "document_id", doc.ID, "error", res.Error)
		}
	} else {
		if res := s.expiration.CancelNotificationsForTarget(doc.ID, algorithms.TargetExpiration); !res.Success {
			logger.Warn("expiration schedule cleanup degraded", "document_id", doc.ID, "error", res.Error)
		}
	}

	if doc.DueDateTrackingEnabled && doc.DueDate != nil {
		if res := s.expiration.ScheduleDueDateNotifications(doc.ID, *doc.DueDate, owner); !res.Success {
			logger.Warn("due date schedule degraded", "document_id", doc.ID, "error", res.Error)
		}
	} else {
		if res := s.expiration.CancelNotificationsForTarget(doc.ID, algorithms.TargetDueDate); !res.Success {
			logger.Warn("due date schedule cleanup degraded", "document_id", doc.ID, "error", res.Error)
		}
	}
}

func (s *documentService) ownedDocument(userID, documentID string) (*models.Document, error) {
	doc, err := s.documentRepo.FindByID(documentID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if doc.UploadedByID != userID {
		return nil, apperrors.ForbiddenError("Access denied")
	}
	return doc, nil
}

func buildDocumentResponse(doc *models.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:                        doc.ID,
		Name:                      doc.Name,
		DocumentCategory:          doc.DocumentCategory,
		DocumentSubtype:           doc.DocumentSubtype,
		OrganizationID:            doc.OrganizationID,
		UploadedByID:              doc.UploadedByID,
		ExpirationDate:            doc.ExpirationDate,
		ExpirationTrackingEnabled: doc.ExpirationTrackingEnabled,
		DueDate:                   doc.DueDate,
		DueDateTrackingEnabled:    doc.DueDateTrackingEnabled,
		CreatedAt:                 doc.CreatedAt,
	}
}
