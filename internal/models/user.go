package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role defines the access-control role of a user
type Role string

const (
	RoleManagement    Role = "MANAGEMENT"
	RoleFinanceTeam   Role = "FINANCE_TEAM"
	RoleProcurementBD Role = "PROCUREMENT_BD"
	RoleAdminHR       Role = "ADMIN_HR"
	RoleIMSQHSE       Role = "IMS_QHSE"
)

// KnownRoles lists every role the access matrix covers
var KnownRoles = []Role{
	RoleManagement,
	RoleFinanceTeam,
	RoleProcurementBD,
	RoleAdminHR,
	RoleIMSQHSE,
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	for _, known := range KnownRoles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents a user in the system
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
type User struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string     `gorm:"unique;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      Role       `gorm:"default:'IMS_QHSE';index" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
