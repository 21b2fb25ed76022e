package store

import (
	"context"
	"errors"
	"time"

	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
)

// ErrNotFound is returned for lookups that match no row.
var ErrNotFound = errors.New("store: not found")

// Store is the customer-scoped persistence contract the sync engine and the
// HTTP layer run against. Writes per sync stage are saved as one batch; no
// cross-stage transaction wraps a whole customer sync, which is safe because
// every stage is idempotent.
type Store interface {
	// Customers / tenants
	GetCustomerWithTenant(ctx context.Context, id uint) (*models.Customer, error)
	ListSyncableCustomers(ctx context.Context) ([]models.Customer, error)
	SetCustomerLastSynced(ctx context.Context, id uint, t time.Time) error

	// Products
	ProductsByCustomer(ctx context.Context, customerID uint) ([]models.Product, error)
	SaveProducts(ctx context.Context, products []models.Product) error

	// Locations
	LocationsByCustomer(ctx context.Context, customerID uint) ([]models.Location, error)
	SaveLocations(ctx context.Context, locations []models.Location) error

	// Inventory levels
	LevelsByCustomer(ctx context.Context, customerID uint) ([]models.InventoryLevel, error)
	SaveInventoryLevels(ctx context.Context, levels []models.InventoryLevel) error

	// Append-only logs. Existing* report which of the given keys are already
	// present for the customer so incremental syncs can skip duplicates with
	// one indexed query instead of a per-record scan.
	ExistingMovementKeys(ctx context.Context, customerID uint, keys []string) (map[string]bool, error)
	InsertMovements(ctx context.Context, movements []models.InventoryMovement) error

	ExistingTransactionKeys(ctx context.Context, customerID uint, keys []string) (map[string]bool, error)
	InsertTransactions(ctx context.Context, transactions []models.Transaction) error
}
