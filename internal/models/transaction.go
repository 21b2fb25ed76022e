package models

import (
	"time"

	"gorm.io/datatypes"
)

// Transaction is an append-only audit entry distinct from InventoryMovement:
// it keeps before/after quantity snapshots and carries an explicit
// idempotency key built from (SKU, timestamp to the second, user,
// context-or-"unknown", quantity) so repeated incremental fetches never
// double-count.
type Transaction struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CustomerID uint   `gorm:"uniqueIndex:idx_transactions_customer_idem" json:"customerId"`
	SKU        string `gorm:"index" json:"sku"`

	TransactionType string `gorm:"index" json:"transactionType"`
	Context         string `json:"context"`
	User            string `json:"user"`
	DisplayName     string `json:"displayName"`

	QuantityBefore int `json:"quantityBefore"`
	QuantityAfter  int `json:"quantityAfter"`
	QuantityChange int `json:"quantityChange"`

	TransactionDate time.Time `gorm:"index" json:"transactionDate"`
	IdempotencyKey  string    `gorm:"uniqueIndex:idx_transactions_customer_idem;not null" json:"-"`

	RawData   datatypes.JSON `gorm:"type:jsonb" json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (Transaction) TableName() string { return "transactions" }
