package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault_backend/internal/repositories"
	"docvault_backend/internal/services"
	"docvault_backend/internal/services/dto"
)

type DocumentHandler struct {
	*BaseHandler
	documentService   services.DocumentService
	expirationService services.ExpirationService
}

func NewDocumentHandler(base *BaseHandler, documentService services.DocumentService, expirationService services.ExpirationService) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler:       base,
		documentService:   documentService,
		expirationService: expirationService,
	}
}

func (h *DocumentHandler) RegisterRoutes(r *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	documents := r.Group("/documents")
	documents.Use(authMiddleware)
	{
		documents.POST("", h.CreateDocument)
		documents.GET("", h.ListDocuments)
		documents.GET("/expiring", h.GetUpcomingExpirations)
		documents.GET("/:documentId", h.GetDocument)
		documents.PUT("/:documentId", h.UpdateDocument)
		documents.PUT("/:documentId/tracking", h.ToggleTracking)
		documents.DELETE("/:documentId", h.DeleteDocument)
	}
}

func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDocumentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	doc, err := h.documentService.CreateDocument(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var criteria repositories.DocumentCriteria
	if !h.BindQuery(c, &criteria) {
		return
	}

	response, err := h.documentService.ListDocuments(userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(userID, c.Param("documentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateDocumentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	doc, err := h.documentService.UpdateDocument(userID, c.Param("documentId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) ToggleTracking(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result := h.expirationService.ToggleTracking(c.Param("documentId"), req.Enabled, userID)
	c.JSON(http.StatusOK, result)
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(userID, c.Param("documentId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

func (h *DocumentHandler) GetUpcomingExpirations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var criteria dto.UpcomingCriteria
	if !h.BindQuery(c, &criteria) {
		return
	}

	documents, err := h.expirationService.GetUpcomingExpirations(userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}
