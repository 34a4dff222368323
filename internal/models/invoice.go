package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceStatus defines possible invoice statuses
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
	InvoiceStatusRefunded  InvoiceStatus = "REFUNDED"
)

// PaymentStatus defines how far an invoice has been paid
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPartial   PaymentStatus = "PARTIAL"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Invoice represents a sales invoice with line items
type Invoice struct {
	ID            string        `gorm:"primaryKey;type:uuid" json:"id"`
	InvoiceNumber string        `gorm:"uniqueIndex;not null" json:"invoice_number"`
	ClientID      string        `gorm:"type:uuid;index;not null" json:"client_id"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       time.Time     `json:"due_date"`
	Status        InvoiceStatus `gorm:"default:'DRAFT';index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"default:'PENDING';index" json:"payment_status"`

	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalAmount    float64 `json:"total_amount"`
	PaidAmount     float64 `json:"paid_amount"`

	Notes       string `gorm:"type:text" json:"notes"`
	Terms       string `gorm:"type:text" json:"terms"`
	CreatedByID string `gorm:"type:uuid" json:"created_by_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Client *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items  []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// TableName specifies the table name for Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// BeforeCreate assigns a UUID primary key
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// RecalculateTotals recomputes subtotal, tax and total from the line items.
// Line totals are refreshed as a side effect.
func (i *Invoice) RecalculateTotals() {
	var subtotal, tax float64
	for idx := range i.Items {
		item := &i.Items[idx]
		item.LineTotal = item.Quantity * item.UnitPrice
		subtotal += item.LineTotal
		tax += item.LineTotal * item.TaxRate / 100
	}
	i.Subtotal = subtotal
	i.TaxAmount = tax
	i.TotalAmount = subtotal + tax - i.DiscountAmount
}

// NextInvoiceNumber generates the next invoice number for today,
// format INV-YYYYMMDD-NNNN with a per-day sequence.
func NextInvoiceNumber(tx *gorm.DB) (string, error) {
	prefix := "INV-" + time.Now().Format("20060102")

	var last Invoice
	err := tx.Where("invoice_number LIKE ?", prefix+"%").
		Order("invoice_number DESC").
		First(&last).Error

	next := 1
	if err == nil {
		var seq int
		if _, scanErr := fmt.Sscanf(last.InvoiceNumber, prefix+"-%d", &seq); scanErr == nil {
			next = seq + 1
		}
	} else if err != gorm.ErrRecordNotFound {
		return "", err
	}

	return fmt.Sprintf("%s-%04d", prefix, next), nil
}

// InvoiceItem is a single line on an invoice
type InvoiceItem struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	InvoiceID   string  `gorm:"type:uuid;index;not null" json:"invoice_id"`
	ProductID   *string `gorm:"type:uuid" json:"product_id,omitempty"`
	Description string  `gorm:"not null" json:"description"`
	Quantity    float64 `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"` // percent
	LineTotal   float64 `json:"line_total"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// BeforeCreate assigns a UUID primary key
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	return nil
}
