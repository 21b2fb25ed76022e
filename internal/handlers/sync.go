package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// triggerFleetSync schedules an immediate fleet run in the background.
func (r *Router) triggerFleetSync(w http.ResponseWriter, req *http.Request) {
	r.syncSvc.RequestFleetSync()
	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "Fleet sync triggered",
		"status":  "processing",
	})
}

// getSyncStatus returns the scheduler state and last fleet result.
func (r *Router) getSyncStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.syncSvc.GetStatus())
}

// syncCustomer runs all five stages for one customer synchronously and
// reports the outcome, distinguishing upstream failures from internal ones.
func (r *Router) syncCustomer(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	if err := r.syncSvc.SyncCustomer(req.Context(), uint(id)); err != nil {
		respondSyncError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Customer synced",
		"customerId": id,
	})
}

// syncCustomerEntity runs a single stage in isolation. Movements and
// transactions accept an optional ?since=RFC3339 window override.
func (r *Router) syncCustomerEntity(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id64, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}
	id := uint(id64)

	var since *time.Time
	if v := req.URL.Query().Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid since timestamp, want RFC3339")
			return
		}
		since = &t
	}

	ctx := req.Context()
	entity := vars["entity"]

	switch entity {
	case "products":
		err = r.syncSvc.SyncProducts(ctx, id)
	case "locations":
		err = r.syncSvc.SyncLocations(ctx, id)
	case "inventory":
		err = r.syncSvc.SyncInventoryLevels(ctx, id)
	case "movements":
		err = r.syncSvc.SyncInventoryMovements(ctx, id, since)
	case "transactions":
		err = r.syncSvc.SyncTransactions(ctx, id, since)
	default:
		respondError(w, http.StatusNotFound, "Unknown sync entity")
		return
	}

	if err != nil {
		respondSyncError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Entity synced",
		"customerId": id,
		"entity":     entity,
	})
}
