package activity

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/blackgoldunited/bguerp/internal/models"
	"github.com/blackgoldunited/bguerp/internal/websocket"
)

// Logger writes the append-only audit trail and pushes each event to
// connected notification listeners. Both paths are best-effort: a failure
// is logged server-side and never surfaced to the request that caused it.
type Logger struct {
	db  *gorm.DB
	hub *websocket.Hub
}

// NewLogger creates an activity logger. The hub may be nil (e.g. in tests).
func NewLogger(db *gorm.DB, hub *websocket.Hub) *Logger {
	return &Logger{db: db, hub: hub}
}

// Event is the payload broadcast to notification listeners
type Event struct {
	UserID     string      `json:"user_id"`
	Action     string      `json:"action"`
	EntityType string      `json:"entity_type"`
	EntityID   string      `json:"entity_id,omitempty"`
	Details    interface{} `json:"details,omitempty"`
	At         time.Time   `json:"at"`
}

// Record logs an action, fire-and-forget
func (l *Logger) Record(userID, action, entityType, entityID string, details interface{}) {
	var detailsJSON datatypes.JSON
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			detailsJSON = raw
		}
	}

	entry := models.ActivityLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    detailsJSON,
	}
	if err := l.db.Create(&entry).Error; err != nil {
		log.Printf("activity: failed to record %s: %v", action, err)
	}

	if l.hub != nil {
		l.hub.Broadcast(Event{
			UserID:     userID,
			Action:     action,
			EntityType: entityType,
			EntityID:   entityID,
			Details:    details,
			At:         time.Now(),
		})
	}
}
