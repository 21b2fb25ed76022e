package skuvault

import (
	"time"
)

// Credentials is the token pair identifying one SkuVault account.
// Every data call requires both tokens in the request body.
type Credentials struct {
	TenantToken string `json:"TenantToken"`
	UserToken   string `json:"UserToken"`
}

// Product is one record from getProducts.
type Product struct {
	Sku             string  `json:"Sku"`
	Description     string  `json:"Description"`
	LongDescription string  `json:"LongDescription"`
	Classification  string  `json:"Classification"`
	Cost            float64 `json:"Cost"`
	RetailPrice     float64 `json:"RetailPrice"`
}

// Location is one record from getLocations. LocationCode arrives as the bare
// code; the warehouse label is separate.
type Location struct {
	LocationCode string `json:"LocationCode"`
	Description  string `json:"Description"`
	Warehouse    string `json:"Warehouse"`
	IsActive     bool   `json:"IsActive"`
}

// InventoryItem is one record from getInventoryByLocation: a quantity
// snapshot for a (sku, location) pair.
type InventoryItem struct {
	Sku               string `json:"Sku"`
	LocationCode      string `json:"LocationCode"`
	QuantityOnHand    int    `json:"Quantity"`
	QuantityAvailable int    `json:"QuantityAvailable"`
	QuantityAllocated int    `json:"QuantityAllocated"`
}

// Movement is one record from getInventoryMovements. Location is the
// compound "WAREHOUSE--CODE" string.
type Movement struct {
	Sku             string    `json:"Sku"`
	Location        string    `json:"Location"`
	Quantity        int       `json:"Quantity"`
	TransactionType string    `json:"TransactionType"`
	Reason          string    `json:"Reason"`
	Reference       string    `json:"Reference"`
	User            string    `json:"User"`
	TransactionDate time.Time `json:"TransactionDate"`
}

// Transaction is one record from getTransactions, carrying before/after
// quantity snapshots in addition to the delta.
type Transaction struct {
	Sku             string    `json:"Sku"`
	TransactionType string    `json:"TransactionType"`
	Context         string    `json:"Context"`
	User            string    `json:"User"`
	QuantityBefore  int       `json:"QuantityBefore"`
	QuantityAfter   int       `json:"QuantityAfter"`
	Quantity        int       `json:"Quantity"`
	TransactionDate time.Time `json:"TransactionDate"`
}
