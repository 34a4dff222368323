package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseOrderStatus defines possible purchase order statuses
type PurchaseOrderStatus string

const (
	PurchaseOrderDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderSent      PurchaseOrderStatus = "SENT"
	PurchaseOrderConfirmed PurchaseOrderStatus = "CONFIRMED"
	PurchaseOrderReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderCancelled PurchaseOrderStatus = "CANCELLED"
)

// PurchaseOrder represents an order placed with a supplier
type PurchaseOrder struct {
	ID          string              `gorm:"primaryKey;type:uuid" json:"id"`
	OrderNumber string              `gorm:"uniqueIndex;not null" json:"order_number"`
	SupplierID  string              `gorm:"type:uuid;index;not null" json:"supplier_id"`
	OrderDate   time.Time           `json:"order_date"`
	ExpectedAt  *time.Time          `json:"expected_at,omitempty"`
	Status      PurchaseOrderStatus `gorm:"default:'DRAFT';index" json:"status"`
	TotalAmount float64             `json:"total_amount"`
	Notes       string              `gorm:"type:text" json:"notes"`
	CreatedByID string              `gorm:"type:uuid" json:"created_by_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Supplier *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// TableName specifies the table name for PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// BeforeCreate assigns defaults before inserting
func (p *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.OrderNumber == "" {
		p.OrderNumber = generateNumber("PO")
	}
	return nil
}

// RecalculateTotal recomputes the order total from the line items
func (p *PurchaseOrder) RecalculateTotal() {
	var total float64
	for idx := range p.Items {
		item := &p.Items[idx]
		item.LineTotal = item.Quantity * item.UnitPrice
		total += item.LineTotal
	}
	p.TotalAmount = total
}

// PurchaseOrderItem is a single line on a purchase order
type PurchaseOrderItem struct {
	ID              string  `gorm:"primaryKey;type:uuid" json:"id"`
	PurchaseOrderID string  `gorm:"type:uuid;index;not null" json:"purchase_order_id"`
	ProductID       *string `gorm:"type:uuid" json:"product_id,omitempty"`
	Description     string  `gorm:"not null" json:"description"`
	Quantity        float64 `gorm:"not null" json:"quantity"`
	UnitPrice       float64 `gorm:"not null" json:"unit_price"`
	LineTotal       float64 `json:"line_total"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for PurchaseOrderItem model
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// BeforeCreate assigns a UUID primary key
func (it *PurchaseOrderItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	return nil
}
