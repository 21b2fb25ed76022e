package models

import (
	"time"

	"gorm.io/datatypes"
)

// InventoryLevel is the current quantity of one product at one location.
// Exactly one row per (CustomerID, ProductID, LocationID); reconciliation
// updates it in place and never historizes.
type InventoryLevel struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"uniqueIndex:idx_levels_customer_product_location" json:"customerId"`
	ProductID  uint `gorm:"uniqueIndex:idx_levels_customer_product_location" json:"productId"`
	LocationID uint `gorm:"uniqueIndex:idx_levels_customer_product_location" json:"locationId"`

	QuantityOnHand    int `json:"quantityOnHand"`
	QuantityAvailable int `json:"quantityAvailable"`
	QuantityAllocated int `json:"quantityAllocated"`

	UpdatedAt time.Time `json:"updatedAt"`

	Product  *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (InventoryLevel) TableName() string { return "inventory_levels" }

// InventoryMovement is an append-only log entry for a quantity change.
// Sync never updates or deletes rows here, only inserts ones that pass the
// dedup check. DedupKey is the hash of
// (CustomerID, ProductID, PerformedBy, OccurredAtUtc, QuantityChange).
type InventoryMovement struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	CustomerID uint  `gorm:"uniqueIndex:idx_movements_customer_dedup" json:"customerId"`
	ProductID  uint  `gorm:"index" json:"productId"`
	LocationID *uint `gorm:"index" json:"locationId"`

	QuantityChange  int    `json:"quantityChange"`
	TransactionType string `gorm:"index" json:"transactionType"`
	Reason          string `json:"reason"`
	Reference       string `json:"reference"`
	PerformedBy     string `json:"performedBy"`

	OccurredAtUtc time.Time `gorm:"index" json:"occurredAtUtc"`
	DedupKey      string    `gorm:"uniqueIndex:idx_movements_customer_dedup;not null" json:"-"`

	RawData   datatypes.JSON `gorm:"type:jsonb" json:"-"`
	CreatedAt time.Time      `json:"createdAt"`

	Product  *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (InventoryMovement) TableName() string { return "inventory_movements" }
