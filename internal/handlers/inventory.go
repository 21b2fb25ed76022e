package handlers

import (
	"net/http"

	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
)

// Thin customer-scoped query wrappers over the mirrored tables. All filtering
// happens in SQL; no business logic lives here.

func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	customerID, ok := r.customerScope(req)
	if !ok {
		respondError(w, http.StatusForbidden, "No customer scope")
		return
	}
	limit, offset := pagination(req)

	q := r.db.Where("customer_id = ?", customerID)
	if sku := req.URL.Query().Get("sku"); sku != "" {
		q = q.Where("sku = ?", sku)
	}
	if cls := req.URL.Query().Get("classification"); cls != "" {
		q = q.Where("classification = ?", cls)
	}

	var products []models.Product
	if err := q.Limit(limit).Offset(offset).Order("sku").Find(&products).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (r *Router) listLocations(w http.ResponseWriter, req *http.Request) {
	customerID, ok := r.customerScope(req)
	if !ok {
		respondError(w, http.StatusForbidden, "No customer scope")
		return
	}
	limit, offset := pagination(req)

	q := r.db.Where("customer_id = ?", customerID)
	if wh := req.URL.Query().Get("warehouse"); wh != "" {
		q = q.Where("warehouse = ?", wh)
	}
	if req.URL.Query().Get("active") == "true" {
		q = q.Where("is_active = true")
	}

	var locations []models.Location
	if err := q.Limit(limit).Offset(offset).Order("code").Find(&locations).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch locations")
		return
	}
	respondJSON(w, http.StatusOK, locations)
}

func (r *Router) listInventory(w http.ResponseWriter, req *http.Request) {
	customerID, ok := r.customerScope(req)
	if !ok {
		respondError(w, http.StatusForbidden, "No customer scope")
		return
	}
	limit, offset := pagination(req)

	q := r.db.Where("customer_id = ?", customerID).
		Preload("Product").
		Preload("Location")
	if v := req.URL.Query().Get("productId"); v != "" {
		q = q.Where("product_id = ?", v)
	}
	if v := req.URL.Query().Get("locationId"); v != "" {
		q = q.Where("location_id = ?", v)
	}

	var levels []models.InventoryLevel
	if err := q.Limit(limit).Offset(offset).Find(&levels).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch inventory")
		return
	}
	respondJSON(w, http.StatusOK, levels)
}

func (r *Router) listMovements(w http.ResponseWriter, req *http.Request) {
	customerID, ok := r.customerScope(req)
	if !ok {
		respondError(w, http.StatusForbidden, "No customer scope")
		return
	}
	limit, offset := pagination(req)

	q := r.db.Where("customer_id = ?", customerID).Preload("Product")
	if v := req.URL.Query().Get("productId"); v != "" {
		q = q.Where("product_id = ?", v)
	}
	if v := req.URL.Query().Get("type"); v != "" {
		q = q.Where("transaction_type = ?", v)
	}

	var movements []models.InventoryMovement
	if err := q.Limit(limit).Offset(offset).Order("occurred_at_utc DESC").Find(&movements).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch movements")
		return
	}
	respondJSON(w, http.StatusOK, movements)
}

func (r *Router) listTransactions(w http.ResponseWriter, req *http.Request) {
	customerID, ok := r.customerScope(req)
	if !ok {
		respondError(w, http.StatusForbidden, "No customer scope")
		return
	}
	limit, offset := pagination(req)

	q := r.db.Where("customer_id = ?", customerID)
	if v := req.URL.Query().Get("sku"); v != "" {
		q = q.Where("sku = ?", v)
	}
	if v := req.URL.Query().Get("type"); v != "" {
		q = q.Where("transaction_type = ?", v)
	}

	var transactions []models.Transaction
	if err := q.Limit(limit).Offset(offset).Order("transaction_date DESC").Find(&transactions).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}
