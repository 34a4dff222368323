package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/blackgoldunited/bguerp/internal/middleware"
	"github.com/blackgoldunited/bguerp/internal/models"
)

// listClients returns clients with search, filtering and pagination
func (r *Router) listClients(w http.ResponseWriter, req *http.Request) {
	page, limit := pagination(req)
	q := req.URL.Query()

	query := r.db.Model(&models.Client{})
	if search := q.Get("query"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"company_name LIKE ? OR contact_person LIKE ? OR email LIKE ?",
			like, like, like,
		)
	}
	switch q.Get("status") {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch clients")
		return
	}

	var clients []models.Client
	if err := query.Order("company_name").
		Offset((page - 1) * limit).Limit(limit).
		Find(&clients).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch clients")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    clients,
		"pagination": map[string]interface{}{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// getClient returns a single client by ID
func (r *Router) getClient(w http.ResponseWriter, req *http.Request) {
	var client models.Client
	if err := r.db.First(&client, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Client not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": client})
}

// createClient creates a new client
func (r *Router) createClient(w http.ResponseWriter, req *http.Request) {
	var client models.Client
	if err := json.NewDecoder(req.Body).Decode(&client); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if client.CompanyName == "" {
		respondError(w, http.StatusBadRequest, "Company name is required")
		return
	}

	if err := r.db.Create(&client).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create client")
		return
	}

	if caller, ok := middleware.UserFromContext(req.Context()); ok {
		r.activity.Record(caller.ID, "CREATE_CLIENT", "client", client.ID, map[string]string{
			"company_name": client.CompanyName,
		})
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    client,
		"message": "Client created successfully",
	})
}

// updateClient updates a client's editable fields. The id and client code
// are fixed at creation and ignored in the payload.
func (r *Router) updateClient(w http.ResponseWriter, req *http.Request) {
	var client models.Client
	if err := r.db.First(&client, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Client not found")
		return
	}

	var payload struct {
		CompanyName   *string  `json:"company_name,omitempty"`
		ContactPerson *string  `json:"contact_person,omitempty"`
		Email         *string  `json:"email,omitempty"`
		Phone         *string  `json:"phone,omitempty"`
		Mobile        *string  `json:"mobile,omitempty"`
		Address       *string  `json:"address,omitempty"`
		City          *string  `json:"city,omitempty"`
		State         *string  `json:"state,omitempty"`
		Country       *string  `json:"country,omitempty"`
		PostalCode    *string  `json:"postal_code,omitempty"`
		TaxNumber     *string  `json:"tax_number,omitempty"`
		CreditLimit   *float64 `json:"credit_limit,omitempty"`
		PaymentTerms  *int     `json:"payment_terms,omitempty"`
		IsActive      *bool    `json:"is_active,omitempty"`
		Notes         *string  `json:"notes,omitempty"`
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
	if payload.Mobile != nil {
		updates["mobile"] = *payload.Mobile
	}
	if payload.Address != nil {
		updates["address"] = *payload.Address
	}
	if payload.City != nil {
		updates["city"] = *payload.City
	}
	if payload.State != nil {
		updates["state"] = *payload.State
	}
	if payload.Country != nil {
		updates["country"] = *payload.Country
	}
	if payload.PostalCode != nil {
		updates["postal_code"] = *payload.PostalCode
	}
	if payload.TaxNumber != nil {
		updates["tax_number"] = *payload.TaxNumber
	}
	if payload.CreditLimit != nil {
		updates["credit_limit"] = *payload.CreditLimit
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
		if err := r.db.Model(&client).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update client")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": client})
}

// deleteClient soft-deletes a client
func (r *Router) deleteClient(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	res := r.db.Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Client not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Client deleted successfully"})
}
