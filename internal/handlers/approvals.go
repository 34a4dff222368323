package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blackgoldunited/bguerp/internal/middleware"
	"github.com/blackgoldunited/bguerp/internal/models"
	"github.com/blackgoldunited/bguerp/internal/services/approval"
)

// ApprovalRequest is the decision payload submitted by an approver
type ApprovalRequest struct {
	DocumentID string `json:"documentId"`
	Action     string `json:"action"`
	Comments   string `json:"comments"`
	Level      int    `json:"level"`
}

// listApprovals lists document approvals with filters and a status summary
func (r *Router) listApprovals(w http.ResponseWriter, req *http.Request) {
	caller, _ := middleware.UserFromContext(req.Context())
	q := req.URL.Query()

	filter := approval.ListFilter{
		Status:       models.ApprovalStatus(q.Get("status")),
		DocumentType: models.DocumentType(q.Get("documentType")),
		PendingOnly:  q.Get("pending") == "true",
	}
	if q.Get("assignedToMe") == "true" {
		filter.AssignedTo = caller.ID
	}

	approvals, summary, err := r.workflow.List(filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch document approvals")
		return
	}

	r.activity.Record(caller.ID, "LIST_DOCUMENT_APPROVALS", "document_approval", "", map[string]interface{}{
		"status":         q.Get("status"),
		"document_type":  q.Get("documentType"),
		"pending":        filter.PendingOnly,
		"assigned_to_me": filter.AssignedTo != "",
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    approvals,
		"summary": summary,
	})
}

// submitApproval submits a document for approval or processes a decision
// against one approval level
func (r *Router) submitApproval(w http.ResponseWriter, req *http.Request) {
	caller, _ := middleware.UserFromContext(req.Context())

	var payload ApprovalRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.DocumentID == "" {
		respondError(w, http.StatusBadRequest, "Document ID is required")
		return
	}
	if payload.Level < 0 || payload.Level > 5 {
		respondError(w, http.StatusBadRequest, "Level must be between 1 and 5")
		return
	}

	outcome, err := r.workflow.Apply(approval.Decision{
		DocumentID: payload.DocumentID,
		Action:     approval.Action(payload.Action),
		Comments:   payload.Comments,
		Level:      payload.Level,
		ActorID:    caller.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, approval.ErrInvalidAction):
			respondError(w, http.StatusBadRequest, "Action must be APPROVE, REJECT or REQUEST_CHANGES")
		case errors.Is(err, approval.ErrDocumentNotFound):
			respondError(w, http.StatusNotFound, "Document not found")
		case errors.Is(err, approval.ErrLevelNotFound):
			respondError(w, http.StatusBadRequest, "Approval level not found")
		default:
			respondError(w, http.StatusInternalServerError, "Failed to process approval")
		}
		return
	}

	r.activity.Record(caller.ID, "DOCUMENT_"+payload.Action, "document_approval", outcome.ApprovalID,
		map[string]interface{}{
			"document_id": payload.DocumentID,
			"level":       payload.Level,
			"comments":    payload.Comments,
		})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"status":          outcome.Status,
			"document_status": outcome.DocumentStatus,
		},
		"message": outcome.Message,
	})
}
