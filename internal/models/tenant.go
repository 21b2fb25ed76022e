package models

import (
	"time"
)

// Tenant is one SkuVault account. Its token pair authorizes every API call
// made on behalf of the customers attached to it. The account password is
// stored only encrypted, so the pair can be re-exchanged without operator
// input.
type Tenant struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `json:"email,omitempty"`

	TenantToken       string `json:"-"`
	UserToken         string `json:"-"`
	EncryptedPassword string `json:"-"`

	Customers []Customer `gorm:"constraint:OnDelete:CASCADE" json:"customers,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tenant) TableName() string { return "tenants" }

// HasCredentials reports whether the token pair is present. A tenant without
// it is skipped by the fleet and every sync stage no-ops.
func (t *Tenant) HasCredentials() bool {
	return t != nil && t.TenantToken != "" && t.UserToken != ""
}
