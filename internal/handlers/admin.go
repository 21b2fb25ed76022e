package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
	"github.com/davebaumann/whoptix-saas-sub000/internal/utils"
)

// CreateCustomerRequest represents an admin customer-create payload
type CreateCustomerRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	TenantID        uint   `json:"tenantId" validate:"required"`
	MembershipLevel int    `json:"membershipLevel"`
}

// CreateTenantRequest represents an admin tenant-create payload
type CreateTenantRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	TenantToken string `json:"tenantToken"`
	UserToken   string `json:"userToken"`
}

// CredentialsRequest carries a SkuVault login for the token exchange
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func pathID(req *http.Request) uint {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	return uint(id)
}

func (r *Router) listCustomers(w http.ResponseWriter, req *http.Request) {
	var customers []models.Customer
	if err := r.db.Preload("Tenant").Find(&customers).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (r *Router) getCustomer(w http.ResponseWriter, req *http.Request) {
	var customer models.Customer
	if err := r.db.Preload("Tenant").First(&customer, pathID(req)).Error; err != nil {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (r *Router) createCustomer(w http.ResponseWriter, req *http.Request) {
	var body CreateCustomerRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	level := body.MembershipLevel
	if level == 0 {
		level = models.MembershipBasic
	}
	if !models.ValidMembership(level) {
		respondError(w, http.StatusBadRequest, "Unknown membership level")
		return
	}

	customer := models.Customer{
		ExternalID:      uuid.NewString(),
		Name:            body.Name,
		Email:           body.Email,
		TenantID:        body.TenantID,
		MembershipLevel: level,
	}
	if err := r.db.Create(&customer).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create customer")
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

// deleteCustomer hard-deletes a customer; the FK constraints cascade to all
// of its mirrored rows.
func (r *Router) deleteCustomer(w http.ResponseWriter, req *http.Request) {
	if err := r.db.Delete(&models.Customer{}, pathID(req)).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted"})
}

func (r *Router) updateMembership(w http.ResponseWriter, req *http.Request) {
	var body struct {
		MembershipLevel int `json:"membershipLevel"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if !models.ValidMembership(body.MembershipLevel) {
		respondError(w, http.StatusBadRequest, "Unknown membership level")
		return
	}

	result := r.db.Model(&models.Customer{}).
		Where("id = ?", pathID(req)).
		Update("membership_level", body.MembershipLevel)
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update membership")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"membershipLevel": body.MembershipLevel,
		"membership":      models.MembershipName(body.MembershipLevel),
	})
}

func (r *Router) listTenants(w http.ResponseWriter, req *http.Request) {
	var tenants []models.Tenant
	if err := r.db.Preload("Customers").Find(&tenants).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch tenants")
		return
	}
	respondJSON(w, http.StatusOK, tenants)
}

func (r *Router) createTenant(w http.ResponseWriter, req *http.Request) {
	var body CreateTenantRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant := models.Tenant{
		Name:        body.Name,
		Email:       body.Email,
		TenantToken: body.TenantToken,
		UserToken:   body.UserToken,
	}
	if err := r.db.Create(&tenant).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create tenant")
		return
	}
	respondJSON(w, http.StatusCreated, tenant)
}

// deleteTenant removes a tenant and, via cascade, its customers and their
// mirrored rows.
func (r *Router) deleteTenant(w http.ResponseWriter, req *http.Request) {
	if err := r.db.Delete(&models.Tenant{}, pathID(req)).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete tenant")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Tenant deleted"})
}

// exchangeCredentials trades a SkuVault email/password for the token pair
// and stores it on the tenant. The password itself is kept only encrypted.
func (r *Router) exchangeCredentials(w http.ResponseWriter, req *http.Request) {
	var body CredentialsRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var tenant models.Tenant
	if err := r.db.First(&tenant, pathID(req)).Error; err != nil {
		respondError(w, http.StatusNotFound, "Tenant not found")
		return
	}

	creds, err := r.skuVault.GetTokens(req.Context(), body.Email, body.Password)
	if err != nil {
		respondSyncError(w, err)
		return
	}

	tenant.Email = body.Email
	tenant.TenantToken = creds.TenantToken
	tenant.UserToken = creds.UserToken
	if r.cfg.EncKey != "" {
		if enc, err := utils.EncryptSecret(body.Password, r.cfg.EncKey); err == nil {
			tenant.EncryptedPassword = enc
		}
	}

	if err := r.db.Save(&tenant).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to store credentials")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Credentials updated"})
}
