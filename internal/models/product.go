package models

import (
	"time"
)

// Product mirrors a SkuVault product. Natural key: (CustomerID, SKU).
// Upsert overwrites mutable fields unconditionally; products absent from the
// upstream feed are left untouched locally.
type Product struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CustomerID uint   `gorm:"uniqueIndex:idx_products_customer_sku" json:"customerId"`
	SKU        string `gorm:"uniqueIndex:idx_products_customer_sku;not null" json:"sku"`

	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Classification string  `gorm:"index" json:"classification"`
	Cost           float64 `json:"cost"`
	RetailPrice    float64 `json:"retailPrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// Location mirrors a SkuVault warehouse location. Natural key: (CustomerID, Code).
type Location struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CustomerID uint   `gorm:"uniqueIndex:idx_locations_customer_code" json:"customerId"`
	Code       string `gorm:"uniqueIndex:idx_locations_customer_code;not null" json:"code"`

	Name      string `json:"name"`
	Warehouse string `gorm:"index" json:"warehouse"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Location) TableName() string { return "locations" }
