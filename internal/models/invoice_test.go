package models

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRecalculateTotals(t *testing.T) {
	invoice := Invoice{
		DiscountAmount: 50,
		Items: []InvoiceItem{
			{Description: "Casing pipe", Quantity: 10, UnitPrice: 85, TaxRate: 5},
			{Description: "Inspection service", Quantity: 1, UnitPrice: 1200, TaxRate: 0},
		},
	}

	invoice.RecalculateTotals()

	if invoice.Items[0].LineTotal != 850 {
		t.Errorf("Expected line total 850, got %v", invoice.Items[0].LineTotal)
	}
	if invoice.Subtotal != 2050 {
		t.Errorf("Expected subtotal 2050, got %v", invoice.Subtotal)
	}
	if invoice.TaxAmount != 42.5 {
		t.Errorf("Expected tax 42.5, got %v", invoice.TaxAmount)
	}
	// 2050 + 42.5 - 50
	if invoice.TotalAmount != 2042.5 {
		t.Errorf("Expected total 2042.5, got %v", invoice.TotalAmount)
	}
}

func TestRecalculateTotalsEmptyInvoice(t *testing.T) {
	invoice := Invoice{}
	invoice.RecalculateTotals()

	if invoice.Subtotal != 0 || invoice.TaxAmount != 0 || invoice.TotalAmount != 0 {
		t.Errorf("Empty invoice should total zero, got %v/%v/%v",
			invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount)
	}
}

func TestNextInvoiceNumber(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&Invoice{}, &InvoiceItem{}); err != nil {
		t.Fatalf("Migration failed: %v", err)
	}

	today := time.Now().Format("20060102")
	pattern := regexp.MustCompile(`^INV-\d{8}-\d{4}$`)

	number, err := NextInvoiceNumber(db)
	if err != nil {
		t.Fatalf("NextInvoiceNumber failed: %v", err)
	}
	if !pattern.MatchString(number) {
		t.Errorf("Invoice number %q does not match INV-YYYYMMDD-NNNN", number)
	}
	if number != fmt.Sprintf("INV-%s-0001", today) {
		t.Errorf("Expected first number of the day, got %q", number)
	}

	// Sequence advances once a number is taken
	if err := db.Create(&Invoice{InvoiceNumber: number, ClientID: "client-1"}).Error; err != nil {
		t.Fatalf("Failed to create invoice: %v", err)
	}
	next, err := NextInvoiceNumber(db)
	if err != nil {
		t.Fatalf("NextInvoiceNumber failed: %v", err)
	}
	if next != fmt.Sprintf("INV-%s-0002", today) {
		t.Errorf("Expected sequence 0002, got %q", next)
	}
}

func TestGenerateNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^CLT\d{8}-[A-Z0-9]{4}$`)
	number := generateNumber("CLT")
	if !pattern.MatchString(number) {
		t.Errorf("Generated number %q does not match PREFIXYYYYMMDD-XXXX", number)
	}
}

func TestGenerateNumberDistinctInTightLoop(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		number := generateNumber("PRD")
		if seen[number] {
			t.Fatalf("Duplicate reference number %q generated back-to-back", number)
		}
		seen[number] = true
	}
}

func TestSignedQuantity(t *testing.T) {
	in := StockMovement{MovementType: MovementIn, Quantity: 10}
	out := StockMovement{MovementType: MovementOut, Quantity: 4}
	adj := StockMovement{MovementType: MovementAdjustment, Quantity: -2}

	if in.SignedQuantity() != 10 {
		t.Errorf("IN should keep its sign, got %v", in.SignedQuantity())
	}
	if out.SignedQuantity() != -4 {
		t.Errorf("OUT should be negated, got %v", out.SignedQuantity())
	}
	if adj.SignedQuantity() != -2 {
		t.Errorf("ADJUSTMENT should be taken as entered, got %v", adj.SignedQuantity())
	}
}
