package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/davebaumann/whoptix-saas-sub000/internal/database"
	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
)

// GormStore is the PostgreSQL-backed Store.
type GormStore struct {
	db *database.DB
}

// NewGormStore creates a Store backed by the given database.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetCustomerWithTenant(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).Preload("Tenant").First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *GormStore) ListSyncableCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Joins("JOIN tenants ON tenants.id = customers.tenant_id").
		Where("tenants.tenant_token <> ''").
		Preload("Tenant").
		Find(&customers).Error
	return customers, err
}

func (s *GormStore) SetCustomerLastSynced(ctx context.Context, id uint, t time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", id).
		Update("last_synced_at", t).Error
}

func (s *GormStore) ProductsByCustomer(ctx context.Context, customerID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Find(&products).Error
	return products, err
}

func (s *GormStore) SaveProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Save(&products).Error
}

func (s *GormStore) LocationsByCustomer(ctx context.Context, customerID uint) ([]models.Location, error) {
	var locations []models.Location
	err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Find(&locations).Error
	return locations, err
}

func (s *GormStore) SaveLocations(ctx context.Context, locations []models.Location) error {
	if len(locations) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Save(&locations).Error
}

func (s *GormStore) LevelsByCustomer(ctx context.Context, customerID uint) ([]models.InventoryLevel, error) {
	var levels []models.InventoryLevel
	err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Find(&levels).Error
	return levels, err
}

func (s *GormStore) SaveInventoryLevels(ctx context.Context, levels []models.InventoryLevel) error {
	if len(levels) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Save(&levels).Error
}

func (s *GormStore) ExistingMovementKeys(ctx context.Context, customerID uint, keys []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(keys))
	if len(keys) == 0 {
		return existing, nil
	}
	var found []string
	err := s.db.WithContext(ctx).Model(&models.InventoryMovement{}).
		Where("customer_id = ? AND dedup_key IN ?", customerID, keys).
		Pluck("dedup_key", &found).Error
	if err != nil {
		return nil, err
	}
	for _, k := range found {
		existing[k] = true
	}
	return existing, nil
}

func (s *GormStore) InsertMovements(ctx context.Context, movements []models.InventoryMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&movements).Error
}

func (s *GormStore) ExistingTransactionKeys(ctx context.Context, customerID uint, keys []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(keys))
	if len(keys) == 0 {
		return existing, nil
	}
	var found []string
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("customer_id = ? AND idempotency_key IN ?", customerID, keys).
		Pluck("idempotency_key", &found).Error
	if err != nil {
		return nil, err
	}
	for _, k := range found {
		existing[k] = true
	}
	return existing, nil
}

func (s *GormStore) InsertTransactions(ctx context.Context, transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&transactions).Error
}
