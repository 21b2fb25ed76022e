package models

import (
	"time"
)

// Customer is one subscribing business whose inventory is mirrored locally.
// Customers share their tenant's SkuVault credentials; LastSyncedAt anchors
// the incremental window for movements and transactions and is advanced only
// after a fully successful sync.
type Customer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ExternalID string `gorm:"type:uuid;uniqueIndex" json:"externalId"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `json:"email,omitempty"`

	TenantID uint    `gorm:"index;not null" json:"tenantId"`
	Tenant   *Tenant `json:"tenant,omitempty"`

	MembershipLevel int        `gorm:"default:1" json:"membershipLevel"`
	LastSyncedAt    *time.Time `json:"lastSyncedAt,omitempty"`

	// Mirrored rows; deleting a customer cascades through all of them.
	Products     []Product           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Locations    []Location          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Levels       []InventoryLevel    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Movements    []InventoryMovement `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Transactions []Transaction       `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Customer) TableName() string { return "customers" }
