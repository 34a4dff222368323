package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a customer company
type Client struct {
	ID            string  `gorm:"primaryKey;type:uuid" json:"id"`
	ClientCode    string  `gorm:"uniqueIndex;not null" json:"client_code"`
	CompanyName   string  `gorm:"index;not null" json:"company_name"`
	ContactPerson string  `json:"contact_person"`
	Email         string  `gorm:"index" json:"email"`
	Phone         string  `json:"phone"`
	Mobile        string  `json:"mobile"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Country       string  `json:"country"`
	PostalCode    string  `json:"postal_code"`
	TaxNumber     string  `json:"tax_number"`
	CreditLimit   float64 `json:"credit_limit"`
	PaymentTerms  int     `json:"payment_terms"` // days
	IsActive      bool    `gorm:"default:true;index" json:"is_active"`
	Notes         string  `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}

// BeforeCreate assigns defaults before inserting
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.ClientCode == "" {
		c.ClientCode = generateNumber("CLT")
	}
	return nil
}
