package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog is the append-only audit trail. Writes are best-effort;
// a failed insert never fails the request that produced it.
type ActivityLog struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string         `gorm:"type:uuid;index" json:"user_id"`
	Action     string         `gorm:"index;not null" json:"action"`
	EntityType string         `gorm:"index" json:"entity_type"`
	EntityID   string         `gorm:"type:uuid" json:"entity_id"`
	Details    datatypes.JSON `json:"details"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for ActivityLog model
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// BeforeCreate assigns a UUID primary key
func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
