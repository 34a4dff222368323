package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/datatypes"

	"github.com/blackgoldunited/bguerp/internal/middleware"
	"github.com/blackgoldunited/bguerp/internal/models"
)

var validDocumentTypes = map[models.DocumentType]bool{
	models.DocumentTypeContract:    true,
	models.DocumentTypeInvoice:     true,
	models.DocumentTypeReport:      true,
	models.DocumentTypeCertificate: true,
	models.DocumentTypeLetter:      true,
	models.DocumentTypeMemo:        true,
	models.DocumentTypeProposal:    true,
	models.DocumentTypeOther:       true,
}

// listDocuments returns documents the caller may see, with filters.
// Non-privileged roles only see PUBLIC/DEPARTMENT documents or their own.
func (r *Router) listDocuments(w http.ResponseWriter, req *http.Request) {
	caller, _ := middleware.UserFromContext(req.Context())
	page, limit := pagination(req)
	q := req.URL.Query()

	query := r.db.Model(&models.Document{}).Preload("CreatedBy")
	if search := q.Get("query"); search != "" {
		like := "%" + search + "%"
		query = query.Where("document_name LIKE ? OR content LIKE ?", like, like)
	}
	if docType := q.Get("documentType"); docType != "" {
		query = query.Where("document_type = ?", docType)
	}
	if category := q.Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := q.Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if caller.Role != models.RoleManagement && caller.Role != models.RoleAdminHR {
		query = query.Where(
			"access_level IN ? OR created_by_id = ?",
			[]models.AccessLevel{models.AccessPublic, models.AccessDepartment},
			caller.ID,
		)
	}

	var documents []models.Document
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&documents).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch documents")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": documents})
}

// getDocument returns a single document by ID
func (r *Router) getDocument(w http.ResponseWriter, req *http.Request) {
	caller, _ := middleware.UserFromContext(req.Context())

	var document models.Document
	if err := r.db.Preload("CreatedBy").
		First(&document, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Document not found")
		return
	}

	privileged := caller.Role == models.RoleManagement || caller.Role == models.RoleAdminHR
	if document.AccessLevel == models.AccessPrivate && !privileged && document.CreatedByID != caller.ID {
		respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": document})
}

// createDocument creates a new document in DRAFT status
func (r *Router) createDocument(w http.ResponseWriter, req *http.Request) {
	var document models.Document
	if err := json.NewDecoder(req.Body).Decode(&document); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if document.DocumentName == "" {
		respondError(w, http.StatusBadRequest, "Document name is required")
		return
	}
	if !validDocumentTypes[document.DocumentType] {
		respondError(w, http.StatusBadRequest, "Unknown document type")
		return
	}

	caller, _ := middleware.UserFromContext(req.Context())
	document.CreatedByID = caller.ID
	document.Status = models.DocumentStatusDraft
	if document.AccessLevel == "" {
		document.AccessLevel = models.AccessPrivate
	}

	if err := r.db.Create(&document).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create document")
		return
	}

	r.activity.Record(caller.ID, "CREATE_DOCUMENT", "document", document.ID, map[string]string{
		"document_number": document.DocumentNumber,
		"document_name":   document.DocumentName,
	})

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    document,
		"message": "Document created successfully",
	})
}

// updateDocument updates a document's editable fields. Status, number,
// ownership and id are not editable here: status belongs to the approval
// workflow, the rest are fixed at creation.
func (r *Router) updateDocument(w http.ResponseWriter, req *http.Request) {
	caller, _ := middleware.UserFromContext(req.Context())

	var document models.Document
	if err := r.db.First(&document, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Document not found")
		return
	}

	privileged := caller.Role == models.RoleManagement || caller.Role == models.RoleAdminHR
	if !privileged && document.CreatedByID != caller.ID {
		respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	var payload struct {
		DocumentName      *string              `json:"document_name,omitempty"`
		DocumentType      *models.DocumentType `json:"document_type,omitempty"`
		Category          *string              `json:"category,omitempty"`
		Content           *string              `json:"content,omitempty"`
		Variables         datatypes.JSON       `json:"variables,omitempty"`
		Tags              datatypes.JSON       `json:"tags,omitempty"`
		AccessLevel       *models.AccessLevel  `json:"access_level,omitempty"`
		ExpiryDate        *time.Time           `json:"expiry_date,omitempty"`
		RelatedEntityType *string              `json:"related_entity_type,omitempty"`
		RelatedEntityID   *string              `json:"related_entity_id,omitempty"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if payload.DocumentName != nil {
		if *payload.DocumentName == "" {
			respondError(w, http.StatusBadRequest, "Document name is required")
			return
		}
		updates["document_name"] = *payload.DocumentName
	}
	if payload.DocumentType != nil {
		if !validDocumentTypes[*payload.DocumentType] {
			respondError(w, http.StatusBadRequest, "Unknown document type")
			return
		}
		updates["document_type"] = *payload.DocumentType
	}
	if payload.AccessLevel != nil {
		switch *payload.AccessLevel {
		case models.AccessPublic, models.AccessPrivate, models.AccessDepartment:
		default:
			respondError(w, http.StatusBadRequest, "Unknown access level")
			return
		}
		updates["access_level"] = *payload.AccessLevel
	}
	if payload.Category != nil {
		updates["category"] = *payload.Category
	}
	if payload.Content != nil {
		updates["content"] = *payload.Content
	}
	if payload.Variables != nil {
		updates["variables"] = payload.Variables
	}
	if payload.Tags != nil {
		updates["tags"] = payload.Tags
	}
	if payload.ExpiryDate != nil {
		updates["expiry_date"] = *payload.ExpiryDate
	}
	if payload.RelatedEntityType != nil {
		updates["related_entity_type"] = *payload.RelatedEntityType
	}
	if payload.RelatedEntityID != nil {
		updates["related_entity_id"] = *payload.RelatedEntityID
	}

	if len(updates) > 0 {
		if err := r.db.Model(&document).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update document")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": document})
}

// deleteDocument soft-deletes a document
func (r *Router) deleteDocument(w http.ResponseWriter, req *http.Request) {
	res := r.db.Delete(&models.Document{}, "id = ?", mux.Vars(req)["id"])
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Document not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Document deleted successfully"})
}
