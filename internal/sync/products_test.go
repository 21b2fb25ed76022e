package sync

import (
	"context"
	"testing"

	"github.com/davebaumann/whoptix-saas-sub000/internal/skuvault"
)

func TestSyncProductsIsIdempotent(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	up.products = []skuvault.Product{
		{Sku: "WIDGET-001", Description: "Widget", LongDescription: "A widget", Classification: "parts", Cost: 2.5, RetailPrice: 9.99},
		{Sku: "GADGET-002", Description: "Gadget", Cost: 4, RetailPrice: 19.99},
	}

	ctx := context.Background()
	if err := svc.SyncProducts(ctx, id); err != nil {
		t.Fatalf("First sync failed: %v", err)
	}
	if err := svc.SyncProducts(ctx, id); err != nil {
		t.Fatalf("Second sync failed: %v", err)
	}

	products, _ := st.ProductsByCustomer(ctx, id)
	if len(products) != 2 {
		t.Fatalf("Expected 2 products after double sync, got %d", len(products))
	}
	for _, p := range products {
		if p.SKU == "WIDGET-001" && (p.Name != "Widget" || p.Cost != 2.5) {
			t.Errorf("WIDGET-001 fields wrong after resync: %+v", p)
		}
	}
}

func TestSyncProductsOverwritesMutableFields(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	ctx := context.Background()

	up.products = []skuvault.Product{{Sku: "WIDGET-001", Description: "Old name", Cost: 1}}
	if err := svc.SyncProducts(ctx, id); err != nil {
		t.Fatalf("Initial sync failed: %v", err)
	}

	up.products = []skuvault.Product{{Sku: "WIDGET-001", Description: "New name", Cost: 3}}
	if err := svc.SyncProducts(ctx, id); err != nil {
		t.Fatalf("Resync failed: %v", err)
	}

	products, _ := st.ProductsByCustomer(ctx, id)
	if len(products) != 1 {
		t.Fatalf("Expected single upserted product, got %d", len(products))
	}
	if products[0].Name != "New name" || products[0].Cost != 3 {
		t.Errorf("Fields not overwritten: %+v", products[0])
	}
}

func TestSyncProductsLeavesAbsentRowsUntouched(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	ctx := context.Background()

	up.products = []skuvault.Product{
		{Sku: "KEEP-1", Description: "Kept"},
		{Sku: "DRIFT-1", Description: "Will vanish upstream"},
	}
	if err := svc.SyncProducts(ctx, id); err != nil {
		t.Fatalf("Initial sync failed: %v", err)
	}

	// DRIFT-1 disappears from the feed; no deletion locally
	up.products = []skuvault.Product{{Sku: "KEEP-1", Description: "Kept"}}
	if err := svc.SyncProducts(ctx, id); err != nil {
		t.Fatalf("Resync failed: %v", err)
	}

	products, _ := st.ProductsByCustomer(ctx, id)
	if len(products) != 2 {
		t.Errorf("Products absent upstream must not be deleted, got %d rows", len(products))
	}
}

func TestSyncLocationsUpsertsByCode(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	ctx := context.Background()

	up.locations = []skuvault.Location{
		{LocationCode: "A1-01", Description: "Shelf A1", Warehouse: "MAIN", IsActive: true},
	}
	if err := svc.SyncLocations(ctx, id); err != nil {
		t.Fatalf("Initial sync failed: %v", err)
	}

	up.locations = []skuvault.Location{
		{LocationCode: "A1-01", Description: "Shelf A1 renamed", Warehouse: "MAIN", IsActive: false},
	}
	if err := svc.SyncLocations(ctx, id); err != nil {
		t.Fatalf("Resync failed: %v", err)
	}

	locations, _ := st.LocationsByCustomer(ctx, id)
	if len(locations) != 1 {
		t.Fatalf("Expected single upserted location, got %d", len(locations))
	}
	l := locations[0]
	if l.Name != "Shelf A1 renamed" || l.IsActive {
		t.Errorf("Location fields not synced: %+v", l)
	}
}
