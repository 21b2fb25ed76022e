package utils

import (
	"testing"

	"github.com/davebaumann/whoptix-saas-sub000/internal/config"
	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
)

func TestPasswordHashing(t *testing.T) {
	password := "secret123"

	// Test Hashing
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == password {
		t.Error("Hash should not match plaintext password")
	}
	if len(hash) == 0 {
		t.Error("Hash should not be empty")
	}

	// Test Comparison (Success)
	if !CheckPasswordHash(password, hash) {
		t.Error("Password should match hash")
	}

	// Test Comparison (Failure)
	if CheckPasswordHash("wrongpassword", hash) {
		t.Error("Wrong password should not match hash")
	}
}

func TestSessionToken(t *testing.T) {
	cfg := &config.Config{
		JWTSecret: "test-secret-key-12345",
	}

	customerID := uint(42)
	user := &models.UserAuth{
		ID:         "uuid-1234",
		Email:      "test@example.com",
		Role:       "user",
		CustomerID: &customerID,
	}

	token, err := GenerateSessionToken(user, cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if token == "" {
		t.Error("Token should not be empty")
	}

	// Test Validation (Success)
	claims, err := ValidateToken(token, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims["id"] != user.ID {
		t.Errorf("Expected user ID %s, got %v", user.ID, claims["id"])
	}
	if claims["email"] != user.Email {
		t.Errorf("Expected email %s, got %v", user.Email, claims["email"])
	}

	// Customer scope travels in the claims
	id, ok := ClaimsCustomerID(claims)
	if !ok || id != customerID {
		t.Errorf("Expected customer scope %d, got %d (ok=%v)", customerID, id, ok)
	}

	// Test Validation (Failure - Wrong Key)
	_, err = ValidateToken(token, "wrong-key")
	if err == nil {
		t.Error("Validation should fail with wrong key")
	}
}

func TestSessionTokenAdminHasNoCustomerScope(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret-key-12345"}

	admin := &models.UserAuth{
		ID:    "uuid-admin",
		Email: "admin@example.com",
		Role:  "admin",
	}

	token, err := GenerateSessionToken(admin, cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if _, ok := ClaimsCustomerID(claims); ok {
		t.Error("Admin token should carry no customer scope")
	}
}
