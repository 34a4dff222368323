package approval

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/blackgoldunited/bguerp/internal/models"
)

// Action is a decision an approver can submit against one level
type Action string

const (
	ActionApprove        Action = "APPROVE"
	ActionReject         Action = "REJECT"
	ActionRequestChanges Action = "REQUEST_CHANGES"
)

// IsValid reports whether the action is one of the accepted decisions
func (a Action) IsValid() bool {
	return a == ActionApprove || a == ActionReject || a == ActionRequestChanges
}

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrLevelNotFound    = errors.New("approval level not found")
	ErrInvalidAction    = errors.New("invalid approval action")
)

// Decision carries one approver's submission against a document
type Decision struct {
	DocumentID string
	Action     Action
	Comments   string
	Level      int
	ActorID    string
}

// Outcome is the result of applying a decision
type Outcome struct {
	ApprovalID     string                `json:"approval_id"`
	Status         models.ApprovalStatus `json:"status"`
	DocumentStatus models.DocumentStatus `json:"document_status"`
	Message        string                `json:"message"`
}

// ListFilter narrows the approval listing
type ListFilter struct {
	Status       models.ApprovalStatus
	DocumentType models.DocumentType
	PendingOnly  bool
	AssignedTo   string
}

// Workflow drives the document approval state machine: lazy header
// creation, per-level decisions, and aggregate status recomputation.
type Workflow struct {
	db     *gorm.DB
	policy *Policy
}

// NewWorkflow creates the approval workflow service
func NewWorkflow(db *gorm.DB, policy *Policy) *Workflow {
	return &Workflow{db: db, policy: policy}
}

// Apply processes one decision. The level update, header update and document
// update run inside a single transaction so a failure on a later write
// cannot leave earlier writes applied.
func (w *Workflow) Apply(d Decision) (*Outcome, error) {
	if !d.Action.IsValid() {
		return nil, ErrInvalidAction
	}
	if d.Level <= 0 {
		d.Level = 1
	}

	var outcome *Outcome
	err := w.db.Transaction(func(tx *gorm.DB) error {
		var document models.Document
		if err := tx.First(&document, "id = ?", d.DocumentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDocumentNotFound
			}
			return fmt.Errorf("load document: %w", err)
		}

		header, err := w.findOrCreateHeader(tx, &document, d.ActorID)
		if err != nil {
			return err
		}

		if err := w.applyToLevel(tx, header.ID, d); err != nil {
			return err
		}

		var levels []models.DocumentApprovalLevel
		if err := tx.Where("approval_id = ?", header.ID).Order("level").Find(&levels).Error; err != nil {
			return fmt.Errorf("load levels: %w", err)
		}

		status, docStatus := aggregate(d.Action, levels)

		headerUpdates := map[string]interface{}{
			"status":           status,
			"approved_by_id":   nil,
			"approved_at":      nil,
			"rejection_reason": "",
		}
		if d.Action == ActionApprove {
			headerUpdates["approved_by_id"] = d.ActorID
		}
		if status == models.ApprovalApproved {
			headerUpdates["approved_at"] = time.Now()
		}
		if d.Action == ActionReject {
			headerUpdates["rejection_reason"] = d.Comments
		}
		if err := tx.Model(&models.DocumentApproval{}).Where("id = ?", header.ID).
			Updates(headerUpdates).Error; err != nil {
			return fmt.Errorf("update approval header: %w", err)
		}

		if err := tx.Model(&models.Document{}).Where("id = ?", document.ID).
			Update("status", docStatus).Error; err != nil {
			return fmt.Errorf("update document status: %w", err)
		}

		outcome = &Outcome{
			ApprovalID:     header.ID,
			Status:         status,
			DocumentStatus: docStatus,
			Message:        message(d.Action, status),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// findOrCreateHeader returns the document's approval header, bootstrapping
// the header and its policy levels on first submission.
func (w *Workflow) findOrCreateHeader(tx *gorm.DB, document *models.Document, actorID string) (*models.DocumentApproval, error) {
	var header models.DocumentApproval
	err := tx.Where("document_id = ?", document.ID).First(&header).Error
	if err == nil {
		return &header, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load approval header: %w", err)
	}

	header = models.DocumentApproval{
		DocumentID:    document.ID,
		Status:        models.ApprovalPending,
		RequestedByID: actorID,
	}
	if err := tx.Create(&header).Error; err != nil {
		return nil, fmt.Errorf("create approval header: %w", err)
	}

	levels := make([]models.DocumentApprovalLevel, 0, 2)
	for _, rule := range w.policy.LevelsFor(document.DocumentType) {
		levels = append(levels, models.DocumentApprovalLevel{
			ApprovalID:   header.ID,
			Level:        rule.Level,
			ApproverRole: rule.Role,
			Status:       models.ApprovalPending,
		})
	}
	if err := tx.Create(&levels).Error; err != nil {
		return nil, fmt.Errorf("create approval levels: %w", err)
	}
	return &header, nil
}

// applyToLevel writes the decision onto the addressed level row
func (w *Workflow) applyToLevel(tx *gorm.DB, approvalID string, d Decision) error {
	now := time.Now()
	res := tx.Model(&models.DocumentApprovalLevel{}).
		Where("approval_id = ? AND level = ?", approvalID, d.Level).
		Updates(map[string]interface{}{
			"status":      levelStatus(d.Action),
			"comments":    d.Comments,
			"approver_id": d.ActorID,
			"approved_at": now,
		})
	if res.Error != nil {
		return fmt.Errorf("update approval level: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrLevelNotFound
	}
	return nil
}

func levelStatus(action Action) models.ApprovalStatus {
	switch action {
	case ActionReject:
		return models.ApprovalRejected
	case ActionRequestChanges:
		return models.ApprovalChangesRequested
	default:
		return models.ApprovalApproved
	}
}

// aggregate recomputes the header status by scanning every level.
// REJECT and REQUEST_CHANGES short-circuit regardless of other levels.
func aggregate(action Action, levels []models.DocumentApprovalLevel) (models.ApprovalStatus, models.DocumentStatus) {
	switch action {
	case ActionReject:
		return models.ApprovalRejected, models.DocumentStatusDraft
	case ActionRequestChanges:
		return models.ApprovalChangesRequested, models.DocumentStatusDraft
	}

	allApproved := len(levels) > 0
	for _, level := range levels {
		if level.Status != models.ApprovalApproved {
			allApproved = false
			break
		}
	}
	if allApproved {
		return models.ApprovalApproved, models.DocumentStatusApproved
	}
	return models.ApprovalPending, models.DocumentStatusReview
}

func message(action Action, status models.ApprovalStatus) string {
	switch action {
	case ActionReject:
		return "Document rejected"
	case ActionRequestChanges:
		return "Changes requested for document"
	default:
		if status == models.ApprovalApproved {
			return "Document fully approved"
		}
		return "Level approved, pending further approval"
	}
}

// List returns approvals matching the filter, newest first, together with
// a status-count summary computed over every header.
func (w *Workflow) List(filter ListFilter) ([]models.DocumentApproval, map[models.ApprovalStatus]int, error) {
	query := w.db.Model(&models.DocumentApproval{}).
		Preload("Document").
		Preload("Levels", func(db *gorm.DB) *gorm.DB { return db.Order("level") })

	if filter.Status != "" {
		query = query.Where("document_approvals.status = ?", filter.Status)
	}
	if filter.PendingOnly {
		query = query.Where("document_approvals.status = ?", models.ApprovalPending)
	}
	if filter.DocumentType != "" {
		query = query.Joins("JOIN documents ON documents.id = document_approvals.document_id").
			Where("documents.document_type = ?", filter.DocumentType)
	}
	if filter.AssignedTo != "" {
		query = query.Where(
			"document_approvals.id IN (?)",
			w.db.Model(&models.DocumentApprovalLevel{}).
				Select("approval_id").
				Where("approver_id = ?", filter.AssignedTo),
		)
	}

	var approvals []models.DocumentApproval
	if err := query.Order("document_approvals.created_at DESC").Find(&approvals).Error; err != nil {
		return nil, nil, fmt.Errorf("list approvals: %w", err)
	}

	var all []models.DocumentApproval
	if err := w.db.Select("status").Find(&all).Error; err != nil {
		return nil, nil, fmt.Errorf("summarize approvals: %w", err)
	}
	summary := make(map[models.ApprovalStatus]int)
	for _, approval := range all {
		summary[approval.Status]++
	}

	return approvals, summary, nil
}
