package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
)

// Reports are thin grouped queries over the mirrored tables, gated by the
// customer's membership tier via the static lookup table.

func (r *Router) membershipLevel(customerID uint) int {
	var customer models.Customer
	if err := r.db.Select("membership_level").First(&customer, customerID).Error; err != nil {
		return 0
	}
	return customer.MembershipLevel
}

// listReports returns the reports the caller's tier may access.
func (r *Router) listReports(w http.ResponseWriter, req *http.Request) {
	customerID, ok := r.customerScope(req)
	if !ok {
		respondError(w, http.StatusForbidden, "No customer scope")
		return
	}
	level := r.membershipLevel(customerID)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"membership": models.MembershipName(level),
		"reports":    models.ReportNames(level),
	})
}

func (r *Router) getReport(w http.ResponseWriter, req *http.Request) {
	customerID, ok := r.customerScope(req)
	if !ok {
		respondError(w, http.StatusForbidden, "No customer scope")
		return
	}

	name := mux.Vars(req)["name"]
	level := r.membershipLevel(customerID)
	if !models.CanAccessReport(name, level) {
		respondError(w, http.StatusForbidden, "Report not available at your membership level")
		return
	}

	switch name {
	case "inventory-by-warehouse":
		r.reportInventoryByWarehouse(w, customerID)
	case "low-stock":
		threshold := 10
		if v, err := strconv.Atoi(req.URL.Query().Get("threshold")); err == nil && v > 0 {
			threshold = v
		}
		r.reportLowStock(w, customerID, threshold)
	case "movement-summary":
		r.reportMovementSummary(w, customerID)
	case "transaction-history":
		r.reportTransactionHistory(w, customerID)
	case "valuation":
		r.reportValuation(w, customerID)
	default:
		respondError(w, http.StatusNotFound, "Unknown report")
	}
}

func (r *Router) reportInventoryByWarehouse(w http.ResponseWriter, customerID uint) {
	var rows []struct {
		Warehouse string `json:"warehouse"`
		OnHand    int    `json:"onHand"`
		Skus      int    `json:"skus"`
	}
	err := r.db.Table("inventory_levels").
		Select("locations.warehouse AS warehouse, SUM(inventory_levels.quantity_on_hand) AS on_hand, COUNT(DISTINCT inventory_levels.product_id) AS skus").
		Joins("JOIN locations ON locations.id = inventory_levels.location_id").
		Where("inventory_levels.customer_id = ?", customerID).
		Group("locations.warehouse").
		Scan(&rows).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (r *Router) reportLowStock(w http.ResponseWriter, customerID uint, threshold int) {
	var rows []struct {
		SKU    string `json:"sku"`
		Name   string `json:"name"`
		OnHand int    `json:"onHand"`
	}
	err := r.db.Table("inventory_levels").
		Select("products.sku AS sku, products.name AS name, SUM(inventory_levels.quantity_on_hand) AS on_hand").
		Joins("JOIN products ON products.id = inventory_levels.product_id").
		Where("inventory_levels.customer_id = ?", customerID).
		Group("products.sku, products.name").
		Having("SUM(inventory_levels.quantity_on_hand) <= ?", threshold).
		Order("on_hand").
		Scan(&rows).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (r *Router) reportMovementSummary(w http.ResponseWriter, customerID uint) {
	var rows []struct {
		TransactionType string `json:"transactionType"`
		Count           int    `json:"count"`
		NetChange       int    `json:"netChange"`
	}
	err := r.db.Table("inventory_movements").
		Select("transaction_type, COUNT(*) AS count, SUM(quantity_change) AS net_change").
		Where("customer_id = ?", customerID).
		Group("transaction_type").
		Scan(&rows).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (r *Router) reportTransactionHistory(w http.ResponseWriter, customerID uint) {
	var rows []models.Transaction
	err := r.db.Where("customer_id = ?", customerID).
		Order("transaction_date DESC").
		Limit(500).
		Find(&rows).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (r *Router) reportValuation(w http.ResponseWriter, customerID uint) {
	var rows []struct {
		Classification string  `json:"classification"`
		Units          int     `json:"units"`
		CostValue      float64 `json:"costValue"`
		RetailValue    float64 `json:"retailValue"`
	}
	err := r.db.Table("inventory_levels").
		Select("products.classification AS classification, SUM(inventory_levels.quantity_on_hand) AS units, SUM(inventory_levels.quantity_on_hand * products.cost) AS cost_value, SUM(inventory_levels.quantity_on_hand * products.retail_price) AS retail_value").
		Joins("JOIN products ON products.id = inventory_levels.product_id").
		Where("inventory_levels.customer_id = ?", customerID).
		Group("products.classification").
		Scan(&rows).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}
