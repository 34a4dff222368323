package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/blackgoldunited/bguerp/internal/middleware"
	"github.com/blackgoldunited/bguerp/internal/models"
	"github.com/blackgoldunited/bguerp/internal/services/printer"
)

// InvoiceRequest is the create payload for a sales invoice
type InvoiceRequest struct {
	ClientID       string               `json:"client_id"`
	IssueDate      *time.Time           `json:"issue_date,omitempty"`
	DueDate        time.Time            `json:"due_date"`
	DiscountAmount float64              `json:"discount_amount"`
	Notes          string               `json:"notes"`
	Terms          string               `json:"terms"`
	Items          []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest is one requested invoice line
type InvoiceItemRequest struct {
	ProductID   *string `json:"product_id,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
}

func (ir *InvoiceRequest) validate() error {
	if ir.ClientID == "" {
		return fmt.Errorf("client is required")
	}
	if ir.DueDate.IsZero() {
		return fmt.Errorf("due date is required")
	}
	if len(ir.Items) == 0 {
		return fmt.Errorf("at least one invoice item is required")
	}
	for _, item := range ir.Items {
		if item.Description == "" {
			return fmt.Errorf("item description is required")
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item quantity must be positive")
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("item unit price must be non-negative")
		}
	}
	return nil
}

// listInvoices returns invoices with filtering and pagination
func (r *Router) listInvoices(w http.ResponseWriter, req *http.Request) {
	page, limit := pagination(req)
	q := req.URL.Query()

	query := r.db.Model(&models.Invoice{}).Preload("Client").Preload("Items")
	if status := q.Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := q.Get("paymentStatus"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if clientID := q.Get("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if search := q.Get("query"); search != "" {
		like := "%" + search + "%"
		query = query.Where("invoice_number LIKE ? OR notes LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch invoices")
		return
	}

	var invoices []models.Invoice
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&invoices).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch invoices")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    invoices,
		"pagination": map[string]interface{}{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// getInvoice returns a single invoice by ID
func (r *Router) getInvoice(w http.ResponseWriter, req *http.Request) {
	var invoice models.Invoice
	if err := r.db.Preload("Client").Preload("Items").
		First(&invoice, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Invoice not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": invoice})
}

// createInvoice creates an invoice with line items. The invoice and its
// items are written in one transaction; totals are always recomputed
// server-side from the items.
func (r *Router) createInvoice(w http.ResponseWriter, req *http.Request) {
	var payload InvoiceRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := payload.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var client models.Client
	if err := r.db.First(&client, "id = ?", payload.ClientID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Client not found")
		return
	}

	caller, _ := middleware.UserFromContext(req.Context())

	var invoice models.Invoice
	err := r.db.Transaction(func(tx *gorm.DB) error {
		number, err := models.NextInvoiceNumber(tx)
		if err != nil {
			return err
		}

		invoice = models.Invoice{
			InvoiceNumber:  number,
			ClientID:       payload.ClientID,
			IssueDate:      time.Now(),
			DueDate:        payload.DueDate,
			Status:         models.InvoiceStatusDraft,
			PaymentStatus:  models.PaymentStatusPending,
			DiscountAmount: payload.DiscountAmount,
			Notes:          payload.Notes,
			Terms:          payload.Terms,
			CreatedByID:    caller.ID,
		}
		if payload.IssueDate != nil {
			invoice.IssueDate = *payload.IssueDate
		}
		for _, item := range payload.Items {
			invoice.Items = append(invoice.Items, models.InvoiceItem{
				ProductID:   item.ProductID,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				TaxRate:     item.TaxRate,
			})
		}
		invoice.RecalculateTotals()

		return tx.Create(&invoice).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	r.activity.Record(caller.ID, "CREATE_INVOICE", "invoice", invoice.ID, map[string]interface{}{
		"invoice_number": invoice.InvoiceNumber,
		"total":          invoice.TotalAmount,
	})

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    invoice,
		"message": "Invoice created successfully",
	})
}

// updateInvoice updates invoice status, payment fields and notes
func (r *Router) updateInvoice(w http.ResponseWriter, req *http.Request) {
	var invoice models.Invoice
	if err := r.db.First(&invoice, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Invoice not found")
		return
	}

	var payload struct {
		Status        models.InvoiceStatus `json:"status"`
		PaymentStatus models.PaymentStatus `json:"payment_status"`
		PaidAmount    *float64             `json:"paid_amount,omitempty"`
		Notes         *string              `json:"notes,omitempty"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if payload.Status != "" {
		updates["status"] = payload.Status
	}
	if payload.PaymentStatus != "" {
		updates["payment_status"] = payload.PaymentStatus
	}
	if payload.PaidAmount != nil {
		updates["paid_amount"] = *payload.PaidAmount
	}
	if payload.Notes != nil {
		updates["notes"] = *payload.Notes
	}
	if len(updates) > 0 {
		if err := r.db.Model(&invoice).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update invoice")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": invoice})
}

// deleteInvoice soft-deletes an invoice
func (r *Router) deleteInvoice(w http.ResponseWriter, req *http.Request) {
	res := r.db.Delete(&models.Invoice{}, "id = ?", mux.Vars(req)["id"])
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Invoice not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Invoice deleted successfully"})
}

// invoicePDF streams the invoice as a rendered PDF document
func (r *Router) invoicePDF(w http.ResponseWriter, req *http.Request) {
	var invoice models.Invoice
	if err := r.db.Preload("Client").Preload("Items").
		First(&invoice, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Invoice not found")
		return
	}

	pdf, err := printer.GenerateInvoicePDF(&invoice)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render invoice PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.pdf", invoice.InvoiceNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
