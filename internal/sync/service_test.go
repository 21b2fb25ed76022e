package sync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
	"github.com/davebaumann/whoptix-saas-sub000/internal/skuvault"
	"github.com/davebaumann/whoptix-saas-sub000/internal/store"
)

// fakeUpstream is a scriptable in-memory SkuVault API.
type fakeUpstream struct {
	products     []skuvault.Product
	locations    []skuvault.Location
	inventory    []skuvault.InventoryItem
	movements    []skuvault.Movement
	transactions []skuvault.Transaction

	// Tenant tokens whose calls fail as upstream-unavailable
	failFor map[string]bool

	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeUpstream) fail(creds skuvault.Credentials) error {
	if f.failFor[creds.TenantToken] {
		return fmt.Errorf("simulated outage: %w", skuvault.ErrUnavailable)
	}
	return nil
}

func (f *fakeUpstream) GetProducts(ctx context.Context, creds skuvault.Credentials) ([]skuvault.Product, error) {
	if err := f.fail(creds); err != nil {
		return nil, err
	}
	return f.products, nil
}

func (f *fakeUpstream) GetLocations(ctx context.Context, creds skuvault.Credentials) ([]skuvault.Location, error) {
	if err := f.fail(creds); err != nil {
		return nil, err
	}
	return f.locations, nil
}

func (f *fakeUpstream) GetInventory(ctx context.Context, creds skuvault.Credentials) ([]skuvault.InventoryItem, error) {
	if err := f.fail(creds); err != nil {
		return nil, err
	}
	return f.inventory, nil
}

func (f *fakeUpstream) GetInventoryMovements(ctx context.Context, creds skuvault.Credentials, from, to time.Time) ([]skuvault.Movement, error) {
	if err := f.fail(creds); err != nil {
		return nil, err
	}
	f.lastFrom, f.lastTo = from, to
	return f.movements, nil
}

func (f *fakeUpstream) GetTransactions(ctx context.Context, creds skuvault.Credentials, from, to time.Time) ([]skuvault.Transaction, error) {
	if err := f.fail(creds); err != nil {
		return nil, err
	}
	return f.transactions, nil
}

// newTestEnv builds a service over the memory store with one customer whose
// tenant has credentials. Returns the seeded customer id.
func newTestEnv(t *testing.T) (*Service, *store.MemoryStore, *fakeUpstream, uint) {
	t.Helper()

	st := store.NewMemoryStore()
	tenant := st.AddTenant(models.Tenant{
		Name:        "Acme Warehousing",
		TenantToken: "tt-1",
		UserToken:   "ut-1",
	})
	customer := st.AddCustomer(models.Customer{
		Name:     "Acme Retail",
		TenantID: tenant.ID,
	})

	up := &fakeUpstream{failFor: make(map[string]bool)}
	svc := NewService(st, up, Config{Workers: 2, CustomerTimeout: time.Minute})
	return svc, st, up, customer.ID
}

func TestSyncCustomerUpdatesLastSyncedAt(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	up.products = []skuvault.Product{{Sku: "SKU-1", Description: "Widget"}}

	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	if err := svc.SyncCustomer(context.Background(), id); err != nil {
		t.Fatalf("SyncCustomer failed: %v", err)
	}

	customer, err := st.GetCustomerWithTenant(context.Background(), id)
	if err != nil {
		t.Fatalf("reload customer: %v", err)
	}
	if customer.LastSyncedAt == nil || !customer.LastSyncedAt.Equal(fixed) {
		t.Errorf("LastSyncedAt = %v, want %v", customer.LastSyncedAt, fixed)
	}
}

func TestSyncCustomerStageFailureAbortsAndSkipsLastSynced(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	up.failFor["tt-1"] = true

	err := svc.SyncCustomer(context.Background(), id)
	if err == nil {
		t.Fatal("Expected error from failing upstream")
	}

	customer, _ := st.GetCustomerWithTenant(context.Background(), id)
	if customer.LastSyncedAt != nil {
		t.Errorf("LastSyncedAt should stay unset after failed sync, got %v", customer.LastSyncedAt)
	}
}

func TestSyncStagesNoOpWithoutCredentials(t *testing.T) {
	st := store.NewMemoryStore()
	tenant := st.AddTenant(models.Tenant{Name: "No Tokens"})
	customer := st.AddCustomer(models.Customer{Name: "Orphan", TenantID: tenant.ID})

	up := &fakeUpstream{
		failFor:  make(map[string]bool),
		products: []skuvault.Product{{Sku: "SKU-1", Description: "Widget"}},
	}
	svc := NewService(st, up, Config{})

	// Every stage, transactions included, must no-op rather than error
	ctx := context.Background()
	for name, run := range map[string]func() error{
		"products":  func() error { return svc.SyncProducts(ctx, customer.ID) },
		"locations": func() error { return svc.SyncLocations(ctx, customer.ID) },
		"inventory": func() error { return svc.SyncInventoryLevels(ctx, customer.ID) },
		"movements": func() error { return svc.SyncInventoryMovements(ctx, customer.ID, nil) },
		"txns":      func() error { return svc.SyncTransactions(ctx, customer.ID, nil) },
	} {
		if err := run(); err != nil {
			t.Errorf("%s stage should no-op without credentials, got %v", name, err)
		}
	}

	products, _ := st.ProductsByCustomer(ctx, customer.ID)
	if len(products) != 0 {
		t.Errorf("No products should be written without credentials, got %d", len(products))
	}
}

func TestSyncUnknownCustomerFails(t *testing.T) {
	svc, _, _, _ := newTestEnv(t)
	if err := svc.SyncProducts(context.Background(), 999); err == nil {
		t.Error("Expected error for unknown customer")
	}
}

func TestFleetSyncIsolatesFailures(t *testing.T) {
	st := store.NewMemoryStore()
	up := &fakeUpstream{
		failFor:  make(map[string]bool),
		products: []skuvault.Product{{Sku: "SKU-1", Description: "Widget"}},
	}

	var ids []uint
	for i := 1; i <= 3; i++ {
		tenant := st.AddTenant(models.Tenant{
			Name:        fmt.Sprintf("Tenant %d", i),
			TenantToken: fmt.Sprintf("tt-%d", i),
			UserToken:   fmt.Sprintf("ut-%d", i),
		})
		customer := st.AddCustomer(models.Customer{
			Name:     fmt.Sprintf("Customer %d", i),
			TenantID: tenant.ID,
		})
		ids = append(ids, customer.ID)
	}

	// Second customer's upstream is down
	up.failFor["tt-2"] = true

	svc := NewService(st, up, Config{Workers: 2, CustomerTimeout: time.Minute})
	result, err := svc.SyncAllCustomers(context.Background())
	if err != nil {
		t.Fatalf("Fleet sync should not raise: %v", err)
	}

	if result.Total != 3 || result.Succeeded != 2 || result.Failed != 1 {
		t.Errorf("Fleet result = %+v, want total 3, succeeded 2, failed 1", result)
	}
	if _, ok := result.Errors[ids[1]]; !ok {
		t.Errorf("Expected an error recorded for customer %d", ids[1])
	}

	// First and third customers still synced
	for _, id := range []uint{ids[0], ids[2]} {
		products, _ := st.ProductsByCustomer(context.Background(), id)
		if len(products) != 1 {
			t.Errorf("Customer %d should have 1 product after fleet sync, got %d", id, len(products))
		}
	}
	failedProducts, _ := st.ProductsByCustomer(context.Background(), ids[1])
	if len(failedProducts) != 0 {
		t.Errorf("Failed customer should have no products, got %d", len(failedProducts))
	}
}

func TestFleetSyncSkipsTenantsWithoutToken(t *testing.T) {
	st := store.NewMemoryStore()
	tenant := st.AddTenant(models.Tenant{Name: "No Token"})
	st.AddCustomer(models.Customer{Name: "Unsyncable", TenantID: tenant.ID})

	svc := NewService(st, &fakeUpstream{failFor: make(map[string]bool)}, Config{})
	result, err := svc.SyncAllCustomers(context.Background())
	if err != nil {
		t.Fatalf("Fleet sync failed: %v", err)
	}
	if result.Total != 0 {
		t.Errorf("Customers without tenant token must not be enumerated, got total %d", result.Total)
	}
}

func TestManualTriggerRunsWithSchedulerDisabled(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	up.products = []skuvault.Product{{Sku: "SKU-1", Description: "Widget"}}

	// Config carries no SyncInterval, so the ticker is off; the kick
	// channel must still be consumed.
	svc.Start()
	defer svc.Stop()
	svc.RequestFleetSync()

	deadline := time.After(2 * time.Second)
	for {
		products, _ := st.ProductsByCustomer(context.Background(), id)
		if len(products) == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("Manual fleet trigger never synced with the scheduler disabled")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestFetchWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	since := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	last := time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		since    *time.Time
		last     *time.Time
		wantFrom time.Time
	}{
		{"explicit since wins", &since, &last, since},
		{"falls back to last synced", nil, &last, last},
		{"defaults to 7 day lookback", nil, nil, now.AddDate(0, 0, -7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := fetchWindow(tt.since, tt.last, now)
			if !from.Equal(tt.wantFrom) {
				t.Errorf("from = %v, want %v", from, tt.wantFrom)
			}
			if !to.Equal(now) {
				t.Errorf("to = %v, want %v", to, now)
			}
		})
	}
}
