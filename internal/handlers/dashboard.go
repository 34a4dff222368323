package handlers

import (
	"net/http"

	"github.com/blackgoldunited/bguerp/internal/models"
)

// dashboardStats returns the headline counts for the dashboard page
func (r *Router) dashboardStats(w http.ResponseWriter, req *http.Request) {
	var clients, products, openInvoices, pendingApprovals int64
	var revenue float64

	if err := r.db.Model(&models.Client{}).Where("is_active = ?", true).Count(&clients).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute dashboard stats")
		return
	}
	r.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&products)
	r.db.Model(&models.Invoice{}).
		Where("status IN ?", []models.InvoiceStatus{models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusOverdue}).
		Count(&openInvoices)
	r.db.Model(&models.DocumentApproval{}).
		Where("status = ?", models.ApprovalPending).
		Count(&pendingApprovals)

	row := r.db.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").Row()
	_ = row.Scan(&revenue)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"clients":           clients,
			"products":          products,
			"open_invoices":     openInvoices,
			"pending_approvals": pendingApprovals,
			"revenue":           revenue,
		},
	})
}
