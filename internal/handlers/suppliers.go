package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/blackgoldunited/bguerp/internal/models"
)

// listSuppliers returns suppliers with search and pagination
func (r *Router) listSuppliers(w http.ResponseWriter, req *http.Request) {
	page, limit := pagination(req)
	q := req.URL.Query()

	query := r.db.Model(&models.Supplier{})
	if search := q.Get("query"); search != "" {
		like := "%" + search + "%"
		query = query.Where("company_name LIKE ? OR contact_person LIKE ? OR email LIKE ?", like, like, like)
	}
	switch q.Get("status") {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch suppliers")
		return
	}

	var suppliers []models.Supplier
	if err := query.Order("company_name").
		Offset((page - 1) * limit).Limit(limit).
		Find(&suppliers).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch suppliers")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    suppliers,
		"pagination": map[string]interface{}{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// getSupplier returns a single supplier by ID
func (r *Router) getSupplier(w http.ResponseWriter, req *http.Request) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Supplier not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": supplier})
}

// createSupplier creates a new supplier
func (r *Router) createSupplier(w http.ResponseWriter, req *http.Request) {
	var supplier models.Supplier
	if err := json.NewDecoder(req.Body).Decode(&supplier); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if supplier.CompanyName == "" {
		respondError(w, http.StatusBadRequest, "Company name is required")
		return
	}

	if err := r.db.Create(&supplier).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create supplier")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    supplier,
		"message": "Supplier created successfully",
	})
}

// updateSupplier updates a supplier's editable fields. The id and supplier
// code are fixed at creation and ignored in the payload.
func (r *Router) updateSupplier(w http.ResponseWriter, req *http.Request) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Supplier not found")
		return
	}

	var payload struct {
		CompanyName   *string `json:"company_name,omitempty"`
		ContactPerson *string `json:"contact_person,omitempty"`
		Email         *string `json:"email,omitempty"`
		Phone         *string `json:"phone,omitempty"`
		Address       *string `json:"address,omitempty"`
		City          *string `json:"city,omitempty"`
		Country       *string `json:"country,omitempty"`
		TaxNumber     *string `json:"tax_number,omitempty"`
		PaymentTerms  *int    `json:"payment_terms,omitempty"`
		IsActive      *bool   `json:"is_active,omitempty"`
		Notes         *string `json:"notes,omitempty"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if payload.CompanyName != nil {
		if *payload.CompanyName == "" {
			respondError(w, http.StatusBadRequest, "Company name is required")
			return
		}
		updates["company_name"] = *payload.CompanyName
	}
	if payload.ContactPerson != nil {
		updates["contact_person"] = *payload.ContactPerson
	}
	if payload.Email != nil {
		updates["email"] = *payload.Email
	}
	if payload.Phone != nil {
		updates["phone"] = *payload.Phone
	}
	if payload.Address != nil {
		updates["address"] = *payload.Address
	}
	if payload.City != nil {
		updates["city"] = *payload.City
	}
	if payload.Country != nil {
		updates["country"] = *payload.Country
	}
	if payload.TaxNumber != nil {
		updates["tax_number"] = *payload.TaxNumber
	}
	if payload.PaymentTerms != nil {
		updates["payment_terms"] = *payload.PaymentTerms
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if payload.Notes != nil {
		updates["notes"] = *payload.Notes
	}

	if len(updates) > 0 {
		if err := r.db.Model(&supplier).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update supplier")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": supplier})
}

// deleteSupplier soft-deletes a supplier
func (r *Router) deleteSupplier(w http.ResponseWriter, req *http.Request) {
	res := r.db.Delete(&models.Supplier{}, "id = ?", mux.Vars(req)["id"])
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete supplier")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Supplier not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Supplier deleted successfully"})
}
