package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/blackgoldunited/bguerp/internal/middleware"
	"github.com/blackgoldunited/bguerp/internal/models"
)

// listProducts returns products with search and pagination
func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	page, limit := pagination(req)
	q := req.URL.Query()

	query := r.db.Model(&models.Product{})
	if search := q.Get("query"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR product_code LIKE ?", like, like)
	}
	if category := q.Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var products []models.Product
	if err := query.Order("name").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": products})
}

// getProduct returns a single product by ID
func (r *Router) getProduct(w http.ResponseWriter, req *http.Request) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": product})
}

// createProduct creates a new product
func (r *Router) createProduct(w http.ResponseWriter, req *http.Request) {
	var product models.Product
	if err := json.NewDecoder(req.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if product.Name == "" {
		respondError(w, http.StatusBadRequest, "Product name is required")
		return
	}
	if err := r.db.Create(&product).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "data": product})
}

// updateProduct updates a product's editable fields. The id and product
// code are fixed at creation and ignored in the payload.
func (r *Router) updateProduct(w http.ResponseWriter, req *http.Request) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	var payload struct {
		Name         *string  `json:"name,omitempty"`
		Description  *string  `json:"description,omitempty"`
		Category     *string  `json:"category,omitempty"`
		Unit         *string  `json:"unit,omitempty"`
		UnitPrice    *float64 `json:"unit_price,omitempty"`
		CostPrice    *float64 `json:"cost_price,omitempty"`
		ReorderLevel *float64 `json:"reorder_level,omitempty"`
		IsActive     *bool    `json:"is_active,omitempty"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if payload.Name != nil {
		if *payload.Name == "" {
			respondError(w, http.StatusBadRequest, "Product name is required")
			return
		}
		updates["name"] = *payload.Name
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.Category != nil {
		updates["category"] = *payload.Category
	}
	if payload.Unit != nil {
		updates["unit"] = *payload.Unit
	}
	if payload.UnitPrice != nil {
		updates["unit_price"] = *payload.UnitPrice
	}
	if payload.CostPrice != nil {
		updates["cost_price"] = *payload.CostPrice
	}
	if payload.ReorderLevel != nil {
		updates["reorder_level"] = *payload.ReorderLevel
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}

	if len(updates) > 0 {
		if err := r.db.Model(&product).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update product")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": product})
}

// deleteProduct soft-deletes a product
func (r *Router) deleteProduct(w http.ResponseWriter, req *http.Request) {
	res := r.db.Delete(&models.Product{}, "id = ?", mux.Vars(req)["id"])
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// listWarehouses returns all warehouses
func (r *Router) listWarehouses(w http.ResponseWriter, req *http.Request) {
	var warehouses []models.Warehouse
	if err := r.db.Order("code").Find(&warehouses).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch warehouses")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": warehouses})
}

// createWarehouse creates a new warehouse
func (r *Router) createWarehouse(w http.ResponseWriter, req *http.Request) {
	var warehouse models.Warehouse
	if err := json.NewDecoder(req.Body).Decode(&warehouse); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if warehouse.Code == "" || warehouse.Name == "" {
		respondError(w, http.StatusBadRequest, "Code and name are required")
		return
	}
	if err := r.db.Create(&warehouse).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create warehouse")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "data": warehouse})
}

// listMovements returns stock movements, newest first
func (r *Router) listMovements(w http.ResponseWriter, req *http.Request) {
	page, limit := pagination(req)
	q := req.URL.Query()

	query := r.db.Model(&models.StockMovement{}).Preload("Product").Preload("Warehouse")
	if productID := q.Get("productId"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if warehouseID := q.Get("warehouseId"); warehouseID != "" {
		query = query.Where("warehouse_id = ?", warehouseID)
	}

	var movements []models.StockMovement
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&movements).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch stock movements")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": movements})
}

// createMovement records an IN/OUT/ADJUSTMENT stock movement
func (r *Router) createMovement(w http.ResponseWriter, req *http.Request) {
	var movement models.StockMovement
	if err := json.NewDecoder(req.Body).Decode(&movement); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	switch movement.MovementType {
	case models.MovementIn, models.MovementOut, models.MovementAdjustment:
	default:
		respondError(w, http.StatusBadRequest, "Movement type must be IN, OUT or ADJUSTMENT")
		return
	}
	if movement.ProductID == "" || movement.WarehouseID == "" {
		respondError(w, http.StatusBadRequest, "Product and warehouse are required")
		return
	}
	if movement.Quantity <= 0 && movement.MovementType != models.MovementAdjustment {
		respondError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	caller, _ := middleware.UserFromContext(req.Context())
	movement.CreatedByID = caller.ID

	if err := r.db.Create(&movement).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record stock movement")
		return
	}

	r.activity.Record(caller.ID, "CREATE_STOCK_MOVEMENT", "stock_movement", movement.ID, map[string]interface{}{
		"movement_type":   movement.MovementType,
		"signed_quantity": movement.SignedQuantity(),
		"reference":       movement.Reference,
	})

	respondJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "data": movement})
}

// StockLevel is one row of the stock rollup
type StockLevel struct {
	ProductID   string  `json:"product_id"`
	WarehouseID string  `json:"warehouse_id"`
	Quantity    float64 `json:"quantity"`
}

// stockLevels returns per-product/per-warehouse quantities derived from movements
func (r *Router) stockLevels(w http.ResponseWriter, req *http.Request) {
	query := r.db.Model(&models.StockMovement{}).
		Select(`product_id, warehouse_id,
			SUM(CASE WHEN movement_type = 'OUT' THEN -quantity ELSE quantity END) AS quantity`).
		Group("product_id, warehouse_id")

	if productID := req.URL.Query().Get("productId"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}

	var levels []StockLevel
	if err := query.Scan(&levels).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute stock levels")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": levels})
}
