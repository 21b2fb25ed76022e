package sync

import (
	"context"
	"testing"

	"github.com/davebaumann/whoptix-saas-sub000/internal/skuvault"
)

// seedCatalog runs products+locations sync so the identity maps resolve.
func seedCatalog(t *testing.T, svc *Service, up *fakeUpstream, id uint) {
	t.Helper()
	up.products = []skuvault.Product{{Sku: "WIDGET-001", Description: "Widget"}}
	up.locations = []skuvault.Location{{LocationCode: "A1-01", Description: "Shelf", Warehouse: "MAIN", IsActive: true}}

	ctx := context.Background()
	if err := svc.SyncProducts(ctx, id); err != nil {
		t.Fatalf("seed products: %v", err)
	}
	if err := svc.SyncLocations(ctx, id); err != nil {
		t.Fatalf("seed locations: %v", err)
	}
}

func TestSyncInventoryLevelsUpsertsInPlace(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	seedCatalog(t, svc, up, id)
	ctx := context.Background()

	up.inventory = []skuvault.InventoryItem{
		{Sku: "WIDGET-001", LocationCode: "A1-01", QuantityOnHand: 10, QuantityAvailable: 8, QuantityAllocated: 2},
	}
	if err := svc.SyncInventoryLevels(ctx, id); err != nil {
		t.Fatalf("First sync failed: %v", err)
	}

	// Quantity changes upstream; the same row must be updated, not duplicated
	up.inventory[0].QuantityOnHand = 42
	if err := svc.SyncInventoryLevels(ctx, id); err != nil {
		t.Fatalf("Second sync failed: %v", err)
	}

	levels, _ := st.LevelsByCustomer(ctx, id)
	if len(levels) != 1 {
		t.Fatalf("Expected exactly 1 level row, got %d", len(levels))
	}
	if levels[0].QuantityOnHand != 42 {
		t.Errorf("QuantityOnHand = %d, want 42", levels[0].QuantityOnHand)
	}
}

func TestSyncInventoryLevelsSkipsUnknownReferences(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	seedCatalog(t, svc, up, id)
	ctx := context.Background()

	up.inventory = []skuvault.InventoryItem{
		{Sku: "UNKNOWN-999", LocationCode: "A1-01", QuantityOnHand: 5},
		{Sku: "WIDGET-001", LocationCode: "NOWHERE", QuantityOnHand: 5},
		{Sku: "WIDGET-001", LocationCode: "A1-01", QuantityOnHand: 7},
	}

	// Unknown SKU and unknown location are skipped, not errors
	if err := svc.SyncInventoryLevels(ctx, id); err != nil {
		t.Fatalf("Sync should complete despite unresolvable records: %v", err)
	}

	levels, _ := st.LevelsByCustomer(ctx, id)
	if len(levels) != 1 {
		t.Fatalf("Only the resolvable record should be written, got %d rows", len(levels))
	}
	if levels[0].QuantityOnHand != 7 {
		t.Errorf("QuantityOnHand = %d, want 7", levels[0].QuantityOnHand)
	}
}

func TestSyncInventoryLevelsIsIdempotent(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	seedCatalog(t, svc, up, id)
	ctx := context.Background()

	up.inventory = []skuvault.InventoryItem{
		{Sku: "WIDGET-001", LocationCode: "A1-01", QuantityOnHand: 13},
	}
	for i := 0; i < 2; i++ {
		if err := svc.SyncInventoryLevels(ctx, id); err != nil {
			t.Fatalf("Sync %d failed: %v", i+1, err)
		}
	}

	levels, _ := st.LevelsByCustomer(ctx, id)
	if len(levels) != 1 {
		t.Errorf("Double sync with unchanged feed must keep 1 row, got %d", len(levels))
	}
}
