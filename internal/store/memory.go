package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
)

// MemoryStore is an in-process Store used by tests and by the one-shot CLI
// dry-run mode. Behavior mirrors GormStore: Save* assigns ids to new rows and
// overwrites rows that already carry one.
type MemoryStore struct {
	mu sync.RWMutex

	customers map[uint]*models.Customer
	tenants   map[uint]*models.Tenant

	products     map[uint]models.Product
	locations    map[uint]models.Location
	levels       map[uint]models.InventoryLevel
	movements    []models.InventoryMovement
	transactions []models.Transaction

	nextID map[string]uint
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: make(map[uint]*models.Customer),
		tenants:   make(map[uint]*models.Tenant),
		products:  make(map[uint]models.Product),
		locations: make(map[uint]models.Location),
		levels:    make(map[uint]models.InventoryLevel),
		nextID:    make(map[string]uint),
	}
}

func (s *MemoryStore) allocID(table string) uint {
	s.nextID[table]++
	return s.nextID[table]
}

// AddTenant seeds a tenant, assigning an id if absent.
func (s *MemoryStore) AddTenant(t models.Tenant) *models.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.allocID("tenants")
	}
	s.tenants[t.ID] = &t
	return &t
}

// AddCustomer seeds a customer, assigning an id if absent.
func (s *MemoryStore) AddCustomer(c models.Customer) *models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.allocID("customers")
	}
	s.customers[c.ID] = &c
	return &c
}

func (s *MemoryStore) GetCustomerWithTenant(ctx context.Context, id uint) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	out := *c
	if t, ok := s.tenants[c.TenantID]; ok {
		tc := *t
		out.Tenant = &tc
	}
	return &out, nil
}

func (s *MemoryStore) ListSyncableCustomers(ctx context.Context) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Customer
	for _, c := range s.customers {
		t, ok := s.tenants[c.TenantID]
		if !ok || t.TenantToken == "" {
			continue
		}
		cc := *c
		tc := *t
		cc.Tenant = &tc
		out = append(out, cc)
	}
	return out, nil
}

func (s *MemoryStore) SetCustomerLastSynced(ctx context.Context, id uint, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	ts := t
	c.LastSyncedAt = &ts
	return nil
}

func (s *MemoryStore) ProductsByCustomer(ctx context.Context, customerID uint) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Product
	for _, p := range s.products {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) SaveProducts(ctx context.Context, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range products {
		if products[i].ID == 0 {
			products[i].ID = s.allocID("products")
		}
		s.products[products[i].ID] = products[i]
	}
	return nil
}

func (s *MemoryStore) LocationsByCustomer(ctx context.Context, customerID uint) ([]models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Location
	for _, l := range s.locations {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *MemoryStore) SaveLocations(ctx context.Context, locations []models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range locations {
		if locations[i].ID == 0 {
			locations[i].ID = s.allocID("locations")
		}
		s.locations[locations[i].ID] = locations[i]
	}
	return nil
}

func (s *MemoryStore) LevelsByCustomer(ctx context.Context, customerID uint) ([]models.InventoryLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.InventoryLevel
	for _, l := range s.levels {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *MemoryStore) SaveInventoryLevels(ctx context.Context, levels []models.InventoryLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range levels {
		if levels[i].ID == 0 {
			levels[i].ID = s.allocID("levels")
		}
		s.levels[levels[i].ID] = levels[i]
	}
	return nil
}

func (s *MemoryStore) ExistingMovementKeys(ctx context.Context, customerID uint, keys []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	existing := make(map[string]bool)
	for _, m := range s.movements {
		if m.CustomerID == customerID && want[m.DedupKey] {
			existing[m.DedupKey] = true
		}
	}
	return existing, nil
}

func (s *MemoryStore) InsertMovements(ctx context.Context, movements []models.InventoryMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range movements {
		if movements[i].ID == 0 {
			movements[i].ID = s.allocID("movements")
		}
		s.movements = append(s.movements, movements[i])
	}
	return nil
}

func (s *MemoryStore) ExistingTransactionKeys(ctx context.Context, customerID uint, keys []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	existing := make(map[string]bool)
	for _, tx := range s.transactions {
		if tx.CustomerID == customerID && want[tx.IdempotencyKey] {
			existing[tx.IdempotencyKey] = true
		}
	}
	return existing, nil
}

func (s *MemoryStore) InsertTransactions(ctx context.Context, transactions []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range transactions {
		if transactions[i].ID == 0 {
			transactions[i].ID = s.allocID("transactions")
		}
		s.transactions = append(s.transactions, transactions[i])
	}
	return nil
}

// Movements returns a copy of the append-only movement log (test helper).
func (s *MemoryStore) Movements() []models.InventoryMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InventoryMovement, len(s.movements))
	copy(out, s.movements)
	return out
}

// Transactions returns a copy of the append-only transaction log (test helper).
func (s *MemoryStore) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}
