package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
	"github.com/davebaumann/whoptix-saas-sub000/internal/services/printer"
)

// printLabels renders an A4 PDF of QR labels. Callers either pass explicit
// codes or ask for all active location codes in one warehouse.
func (r *Router) printLabels(w http.ResponseWriter, req *http.Request) {
	customerID, ok := r.customerScope(req)
	if !ok {
		respondError(w, http.StatusForbidden, "No customer scope")
		return
	}

	var body struct {
		printer.LabelConfig
		Warehouse string `json:"warehouse"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if len(body.Codes) == 0 && body.Warehouse != "" {
		var locations []models.Location
		err := r.db.Where("customer_id = ? AND warehouse = ? AND is_active = true", customerID, body.Warehouse).
			Order("code").
			Find(&locations).Error
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch locations")
			return
		}
		for _, l := range locations {
			body.Codes = append(body.Codes, l.Code)
		}
	}

	pdf, err := printer.GenerateLabelsPDF(body.LabelConfig)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="labels.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
