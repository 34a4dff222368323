package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/blackgoldunited/bguerp/internal/middleware"
	"github.com/blackgoldunited/bguerp/internal/models"
)

// PurchaseOrderRequest is the create payload for a purchase order
type PurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	OrderDate  *time.Time                 `json:"order_date,omitempty"`
	ExpectedAt *time.Time                 `json:"expected_at,omitempty"`
	Notes      string                     `json:"notes"`
	Items      []PurchaseOrderItemRequest `json:"items"`
}

// PurchaseOrderItemRequest is one requested line item
type PurchaseOrderItemRequest struct {
	ProductID   *string `json:"product_id,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// listPurchaseOrders returns purchase orders, newest first
func (r *Router) listPurchaseOrders(w http.ResponseWriter, req *http.Request) {
	page, limit := pagination(req)

	query := r.db.Model(&models.PurchaseOrder{}).Preload("Supplier").Preload("Items")
	if status := req.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if supplierID := req.URL.Query().Get("supplierId"); supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}

	var orders []models.PurchaseOrder
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch purchase orders")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": orders})
}

// getPurchaseOrder returns a single purchase order by ID
func (r *Router) getPurchaseOrder(w http.ResponseWriter, req *http.Request) {
	var order models.PurchaseOrder
	if err := r.db.Preload("Supplier").Preload("Items").
		First(&order, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Purchase order not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": order})
}

// createPurchaseOrder creates a purchase order with its line items
func (r *Router) createPurchaseOrder(w http.ResponseWriter, req *http.Request) {
	var payload PurchaseOrderRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.SupplierID == "" || len(payload.Items) == 0 {
		respondError(w, http.StatusBadRequest, "Supplier and at least one item are required")
		return
	}

	var supplier models.Supplier
	if err := r.db.First(&supplier, "id = ?", payload.SupplierID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Supplier not found")
		return
	}

	caller, _ := middleware.UserFromContext(req.Context())

	order := models.PurchaseOrder{
		SupplierID:  payload.SupplierID,
		OrderDate:   time.Now(),
		ExpectedAt:  payload.ExpectedAt,
		Status:      models.PurchaseOrderDraft,
		Notes:       payload.Notes,
		CreatedByID: caller.ID,
	}
	if payload.OrderDate != nil {
		order.OrderDate = *payload.OrderDate
	}
	for _, item := range payload.Items {
		order.Items = append(order.Items, models.PurchaseOrderItem{
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	order.RecalculateTotal()

	if err := r.db.Create(&order).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create purchase order")
		return
	}

	r.activity.Record(caller.ID, "CREATE_PURCHASE_ORDER", "purchase_order", order.ID, map[string]interface{}{
		"order_number": order.OrderNumber,
		"total":        order.TotalAmount,
	})

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    order,
		"message": "Purchase order created successfully",
	})
}

// updatePurchaseOrderStatus moves a purchase order through its lifecycle
func (r *Router) updatePurchaseOrderStatus(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		Status models.PurchaseOrderStatus `json:"status"`
		Notes  string                     `json:"notes"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var order models.PurchaseOrder
	if err := r.db.First(&order, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Purchase order not found")
		return
	}

	updates := map[string]interface{}{}
	if payload.Status != "" {
		updates["status"] = payload.Status
	}
	if payload.Notes != "" {
		updates["notes"] = payload.Notes
	}
	if len(updates) > 0 {
		if err := r.db.Model(&order).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update purchase order")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": order})
}

// purchaseStats returns supplier and spend summaries for the purchasing dashboard
func (r *Router) purchaseStats(w http.ResponseWriter, req *http.Request) {
	var supplierCount, activeSuppliers, openOrders int64
	var totalSpend float64

	if err := r.db.Model(&models.Supplier{}).Count(&supplierCount).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute purchase stats")
		return
	}
	r.db.Model(&models.Supplier{}).Where("is_active = ?", true).Count(&activeSuppliers)
	r.db.Model(&models.PurchaseOrder{}).
		Where("status IN ?", []models.PurchaseOrderStatus{
			models.PurchaseOrderDraft, models.PurchaseOrderSent, models.PurchaseOrderConfirmed,
		}).
		Count(&openOrders)

	row := r.db.Model(&models.PurchaseOrder{}).
		Where("status != ?", models.PurchaseOrderCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Row()
	if err := row.Scan(&totalSpend); err != nil && err != gorm.ErrRecordNotFound {
		respondError(w, http.StatusInternalServerError, "Failed to compute purchase stats")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"suppliers":        supplierCount,
			"active_suppliers": activeSuppliers,
			"open_orders":      openOrders,
			"total_spend":      totalSpend,
		},
	})
}
