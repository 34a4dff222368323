package activity

import (
	"encoding/json"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/blackgoldunited/bguerp/internal/models"
)

func TestRecordWritesAuditRow(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.ActivityLog{}); err != nil {
		t.Fatalf("Migration failed: %v", err)
	}

	audit := NewLogger(db, nil)
	audit.Record("user-1", "DOCUMENT_APPROVE", "document_approval", "appr-1", map[string]interface{}{
		"level": 2,
	})

	var entry models.ActivityLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("Expected an audit row: %v", err)
	}
	if entry.UserID != "user-1" || entry.Action != "DOCUMENT_APPROVE" {
		t.Errorf("Unexpected audit row: %+v", entry)
	}

	var details map[string]interface{}
	if err := json.Unmarshal(entry.Details, &details); err != nil {
		t.Fatalf("Details should be valid JSON: %v", err)
	}
	if details["level"] != float64(2) {
		t.Errorf("Expected level detail 2, got %v", details["level"])
	}
}

func TestRecordWithoutDetails(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.ActivityLog{}); err != nil {
		t.Fatalf("Migration failed: %v", err)
	}

	audit := NewLogger(db, nil)
	audit.Record("user-1", "LOGIN", "user", "user-1", nil)

	var count int64
	db.Model(&models.ActivityLog{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 audit row, got %d", count)
	}
}
