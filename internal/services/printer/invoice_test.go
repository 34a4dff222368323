package printer

import (
	"bytes"
	"testing"
	"time"

	"github.com/blackgoldunited/bguerp/internal/models"
)

func TestGenerateInvoicePDF(t *testing.T) {
	invoice := &models.Invoice{
		InvoiceNumber: "INV-20250829-0001",
		IssueDate:     time.Now(),
		DueDate:       time.Now().AddDate(0, 0, 30),
		Status:        models.InvoiceStatusSent,
		Client: &models.Client{
			CompanyName:   "Atlas Drilling Ltd",
			ContactPerson: "J. Varga",
			Email:         "office@atlasdrilling.example",
		},
		Items: []models.InvoiceItem{
			{Description: "Casing Pipe 9 5/8\"", Quantity: 100, UnitPrice: 85, TaxRate: 5, LineTotal: 8500},
		},
		Subtotal:    8500,
		TaxAmount:   425,
		TotalAmount: 8925,
		Notes:       "Delivery ex yard Jebel Ali",
	}

	data, err := GenerateInvoicePDF(invoice)
	if err != nil {
		t.Fatalf("Failed to generate PDF: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("PDF output is empty")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("Output does not start with %%PDF header, got %q", data[:8])
	}
}

func TestGenerateInvoicePDFWithoutClient(t *testing.T) {
	invoice := &models.Invoice{
		InvoiceNumber: "INV-20250829-0002",
		IssueDate:     time.Now(),
		DueDate:       time.Now().AddDate(0, 0, 14),
	}

	data, err := GenerateInvoicePDF(invoice)
	if err != nil {
		t.Fatalf("Failed to generate PDF without client: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Output does not start with %PDF header")
	}
}
