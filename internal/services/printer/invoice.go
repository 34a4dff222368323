package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/blackgoldunited/bguerp/internal/models"
)

// GenerateInvoicePDF renders a sales invoice as an A4 PDF. A QR code with
// the invoice reference is placed in the header so payments can be matched
// by scanning the printed document.
func GenerateInvoicePDF(invoice *models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(120, 10, "INVOICE")
	pdf.SetFont("Arial", "", 10)
	pdf.SetXY(15, 28)
	pdf.Cell(120, 5, fmt.Sprintf("Invoice No: %s", invoice.InvoiceNumber))
	pdf.SetXY(15, 33)
	pdf.Cell(120, 5, fmt.Sprintf("Issue Date: %s", invoice.IssueDate.Format("2006-01-02")))
	pdf.SetXY(15, 38)
	pdf.Cell(120, 5, fmt.Sprintf("Due Date: %s", invoice.DueDate.Format("2006-01-02")))
	pdf.SetXY(15, 43)
	pdf.Cell(120, 5, fmt.Sprintf("Status: %s", invoice.Status))

	// QR reference code top-right
	qrPng, err := qrcode.Encode(invoice.InvoiceNumber, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode QR: %w", err)
	}
	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	_ = pdf.RegisterImageOptionsReader("invoice_qr", imgOptions, bytes.NewReader(qrPng))
	pdf.ImageOptions("invoice_qr", 165, 15, 30, 30, false, imgOptions, 0, "")

	// Bill-to block
	if invoice.Client != nil {
		pdf.SetXY(15, 55)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(60, 5, "Bill To:")
		pdf.SetFont("Arial", "", 10)
		pdf.SetXY(15, 60)
		pdf.Cell(90, 5, invoice.Client.CompanyName)
		pdf.SetXY(15, 65)
		pdf.Cell(90, 5, invoice.Client.Address)
		pdf.SetXY(15, 70)
		pdf.Cell(90, 5, fmt.Sprintf("%s %s", invoice.Client.City, invoice.Client.Country))
	}

	// Line items table
	y := 85.0
	pdf.SetXY(15, y)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(80, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "Tax %", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, item := range invoice.Items {
		pdf.SetX(15)
		pdf.CellFormat(80, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%.1f", item.TaxRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", item.LineTotal), "1", 1, "R", false, 0, "")
	}

	// Totals
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 10)
	pdf.SetX(110)
	pdf.CellFormat(55, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", invoice.Subtotal), "", 1, "R", false, 0, "")
	pdf.SetX(110)
	pdf.CellFormat(55, 6, "Tax", "", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", invoice.TaxAmount), "", 1, "R", false, 0, "")
	if invoice.DiscountAmount > 0 {
		pdf.SetX(110)
		pdf.CellFormat(55, 6, "Discount", "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("-%.2f", invoice.DiscountAmount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetX(110)
	pdf.CellFormat(55, 7, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", invoice.TotalAmount), "T", 1, "R", false, 0, "")

	// Notes and terms
	if invoice.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 9)
		pdf.Cell(40, 5, "Notes")
		pdf.Ln(5)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(180, 5, invoice.Notes, "", "L", false)
	}
	if invoice.Terms != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 9)
		pdf.Cell(40, 5, "Terms")
		pdf.Ln(5)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(180, 5, invoice.Terms, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
