package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentType classifies a business document
type DocumentType string

const (
	DocumentTypeContract    DocumentType = "CONTRACT"
	DocumentTypeInvoice     DocumentType = "INVOICE"
	DocumentTypeReport      DocumentType = "REPORT"
	DocumentTypeCertificate DocumentType = "CERTIFICATE"
	DocumentTypeLetter      DocumentType = "LETTER"
	DocumentTypeMemo        DocumentType = "MEMO"
	DocumentTypeProposal    DocumentType = "PROPOSAL"
	DocumentTypeOther       DocumentType = "OTHER"
)

// DocumentStatus defines the lifecycle status of a document
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "DRAFT"
	DocumentStatusReview    DocumentStatus = "REVIEW"
	DocumentStatusApproved  DocumentStatus = "APPROVED"
	DocumentStatusPublished DocumentStatus = "PUBLISHED"
	DocumentStatusArchived  DocumentStatus = "ARCHIVED"
)

// AccessLevel controls who can read a document
type AccessLevel string

const (
	AccessPublic     AccessLevel = "PUBLIC"
	AccessPrivate    AccessLevel = "PRIVATE"
	AccessDepartment AccessLevel = "DEPARTMENT"
)

// Document represents a managed business document (contract, report, etc.)
type Document struct {
	ID                string         `gorm:"primaryKey;type:uuid" json:"id"`
	DocumentNumber    string         `gorm:"uniqueIndex;not null" json:"document_number"`
	DocumentName      string         `gorm:"index;not null" json:"document_name"`
	DocumentType      DocumentType   `gorm:"index;not null" json:"document_type"`
	Category          string         `gorm:"index" json:"category"`
	Content           string         `gorm:"type:text" json:"content"`
	Variables         datatypes.JSON `json:"variables"`
	Tags              datatypes.JSON `json:"tags"`
	Status            DocumentStatus `gorm:"default:'DRAFT';index" json:"status"`
	AccessLevel       AccessLevel    `gorm:"default:'PRIVATE'" json:"access_level"`
	ExpiryDate        *time.Time     `json:"expiry_date,omitempty"`
	RelatedEntityType string         `json:"related_entity_type"`
	RelatedEntityID   *string        `gorm:"type:uuid" json:"related_entity_id,omitempty"`
	CreatedByID       string         `gorm:"type:uuid;index" json:"created_by_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// TableName specifies the table name for Document model
func (Document) TableName() string {
	return "documents"
}

// BeforeCreate assigns defaults before inserting
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.DocumentNumber == "" {
		d.DocumentNumber = generateNumber("DOC")
	}
	return nil
}

// ApprovalStatus is shared by approval headers and levels
type ApprovalStatus string

const (
	ApprovalPending          ApprovalStatus = "PENDING"
	ApprovalApproved         ApprovalStatus = "APPROVED"
	ApprovalRejected         ApprovalStatus = "REJECTED"
	ApprovalChangesRequested ApprovalStatus = "CHANGES_REQUESTED"
)

// DocumentApproval is the header tracking the overall approve/reject outcome
// for one document. Exactly one header exists per document under approval;
// it is created lazily on the first decision and mutated in place afterwards.
type DocumentApproval struct {
	ID              string         `gorm:"primaryKey;type:uuid" json:"id"`
	DocumentID      string         `gorm:"type:uuid;uniqueIndex;not null" json:"document_id"`
	Status          ApprovalStatus `gorm:"default:'PENDING';index" json:"status"`
	RequestedByID   string         `gorm:"type:uuid" json:"requested_by_id"`
	ApprovedByID    *string        `gorm:"type:uuid" json:"approved_by_id,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Document *Document               `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
	Levels   []DocumentApprovalLevel `gorm:"foreignKey:ApprovalID" json:"approval_levels,omitempty"`
}

// TableName specifies the table name for DocumentApproval model
func (DocumentApproval) TableName() string {
	return "document_approvals"
}

// BeforeCreate assigns a UUID primary key
func (a *DocumentApproval) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// DocumentApprovalLevel is one approver's slot within a multi-step chain.
// Levels are bootstrapped once from the policy when the header is created
// and never recomputed afterwards.
type DocumentApprovalLevel struct {
	ID           string         `gorm:"primaryKey;type:uuid" json:"id"`
	ApprovalID   string         `gorm:"type:uuid;index:idx_approval_level,unique;not null" json:"approval_id"`
	Level        int            `gorm:"index:idx_approval_level,unique;not null" json:"level"`
	ApproverRole Role           `gorm:"not null" json:"approver_role"`
	ApproverID   *string        `gorm:"type:uuid;index" json:"approver_id,omitempty"`
	Status       ApprovalStatus `gorm:"default:'PENDING'" json:"status"`
	Comments     string         `gorm:"type:text" json:"comments"`
	ApprovedAt   *time.Time     `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for DocumentApprovalLevel model
func (DocumentApprovalLevel) TableName() string {
	return "document_approval_levels"
}

// BeforeCreate assigns a UUID primary key
func (l *DocumentApprovalLevel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// ApprovalPolicyRule is one configured (documentType, level, role) row.
// The policy table replaces a hard-coded map so sign-off chains can change
// without a deploy; existing levels are not rewritten when rules change.
type ApprovalPolicyRule struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	DocumentType DocumentType `gorm:"index:idx_policy_type_level,unique;not null" json:"document_type"`
	Level        int          `gorm:"index:idx_policy_type_level,unique;not null" json:"level"`
	ApproverRole Role         `gorm:"not null" json:"approver_role"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for ApprovalPolicyRule model
func (ApprovalPolicyRule) TableName() string {
	return "approval_policies"
}
