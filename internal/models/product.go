package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents an inventory item that can be sold or purchased
type Product struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	ProductCode  string  `gorm:"uniqueIndex;not null" json:"product_code"`
	Name         string  `gorm:"index;not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	Category     string  `gorm:"index" json:"category"`
	Unit         string  `gorm:"default:'pcs'" json:"unit"`
	UnitPrice    float64 `json:"unit_price"`
	CostPrice    float64 `json:"cost_price"`
	ReorderLevel float64 `json:"reorder_level"`
	IsActive     bool    `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Product model
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns defaults before inserting
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ProductCode == "" {
		p.ProductCode = generateNumber("PRD")
	}
	return nil
}

// Warehouse represents a physical stock location
type Warehouse struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Code     string `gorm:"uniqueIndex;not null" json:"code"`
	Name     string `gorm:"not null" json:"name"`
	Location string `json:"location"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Warehouse model
func (Warehouse) TableName() string {
	return "warehouses"
}

// BeforeCreate assigns a UUID primary key
func (w *Warehouse) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// MovementType defines the direction of a stock movement
type MovementType string

const (
	MovementIn         MovementType = "IN"
	MovementOut        MovementType = "OUT"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// StockMovement is the append-only record stock levels are derived from.
// OUT quantities are stored as entered and negated during rollup.
type StockMovement struct {
	ID           string       `gorm:"primaryKey;type:uuid" json:"id"`
	ProductID    string       `gorm:"type:uuid;index;not null" json:"product_id"`
	WarehouseID  string       `gorm:"type:uuid;index;not null" json:"warehouse_id"`
	MovementType MovementType `gorm:"not null;index" json:"movement_type"`
	Quantity     float64      `gorm:"not null" json:"quantity"`
	Reference    string       `gorm:"index" json:"reference"` // e.g. invoice or PO number
	Notes        string       `gorm:"type:text" json:"notes"`
	CreatedByID  string       `gorm:"type:uuid" json:"created_by_id"`

	CreatedAt time.Time `json:"created_at"`

	Product   *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

// TableName specifies the table name for StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}

// BeforeCreate assigns a UUID primary key
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// SignedQuantity returns the quantity with the sign implied by the movement type
func (m *StockMovement) SignedQuantity() float64 {
	if m.MovementType == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}
