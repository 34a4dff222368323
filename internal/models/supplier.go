package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier represents a vendor the company purchases from
type Supplier struct {
	ID            string `gorm:"primaryKey;type:uuid" json:"id"`
	SupplierCode  string `gorm:"uniqueIndex;not null" json:"supplier_code"`
	CompanyName   string `gorm:"index;not null" json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `gorm:"index" json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country"`
	TaxNumber     string `json:"tax_number"`
	PaymentTerms  int    `json:"payment_terms"` // days
	IsActive      bool   `gorm:"default:true;index" json:"is_active"`
	Notes         string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

// BeforeCreate assigns defaults before inserting
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.SupplierCode == "" {
		s.SupplierCode = generateNumber("SUP")
	}
	return nil
}
