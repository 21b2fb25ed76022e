package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/davebaumann/whoptix-saas-sub000/internal/middleware"
	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
	"github.com/davebaumann/whoptix-saas-sub000/internal/utils"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3"`
	Password   string `json:"password" validate:"required,min=8"`
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name"`
	CustomerID *uint  `json:"customerId"`
}

func (r *Router) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.cfg.NodeEnv == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((12 * time.Hour).Seconds()),
	})
}

// login handles user login
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user models.UserAuth
	if err := r.db.Where("email = ?", loginReq.Email).First(&user).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsActive || !utils.CheckPasswordHash(loginReq.Password, user.Password) {
		r.db.Model(&user).Update("failed_login_attempts", user.FailedLoginAttempts+1)
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	user.FailedLoginAttempts = 0
	r.db.Save(&user)

	token, err := utils.GenerateSessionToken(&user, r.cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	r.setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// register handles user registration
func (r *Router) register(w http.ResponseWriter, req *http.Request) {
	var regReq RegisterRequest
	if err := json.NewDecoder(req.Body).Decode(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	hashedPassword, err := utils.HashPassword(regReq.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.UserAuth{
		Username:   regReq.Username,
		Email:      regReq.Email,
		Password:   hashedPassword,
		Name:       regReq.Name,
		Role:       "user",
		CustomerID: regReq.CustomerID,
		IsActive:   true,
	}

	if err := r.db.Create(&user).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create user (email or username might exist)")
		return
	}

	token, err := utils.GenerateSessionToken(&user, r.cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "User created but failed to generate token")
		return
	}

	r.setSessionCookie(w, token)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

// logout clears the session cookie
func (r *Router) logout(w http.ResponseWriter, req *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// me returns the authenticated user's profile and membership info
func (r *Router) me(w http.ResponseWriter, req *http.Request) {
	claims, ok := middleware.ClaimsFrom(req)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var user models.UserAuth
	if err := r.db.First(&user, "id = ?", claims["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	response := map[string]interface{}{"user": user}
	if user.CustomerID != nil {
		var customer models.Customer
		if err := r.db.First(&customer, *user.CustomerID).Error; err == nil {
			response["customer"] = customer
			response["membership"] = models.MembershipName(customer.MembershipLevel)
			response["reports"] = models.ReportNames(customer.MembershipLevel)
		}
	}
	respondJSON(w, http.StatusOK, response)
}
