package sync

import (
	"context"
	"fmt"
	"log"

	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
)

type levelKey struct {
	productID  uint
	locationID uint
}

// SyncInventoryLevels mirrors the upstream quantity snapshot, upserting one
// row per (CustomerID, ProductID, LocationID). Records naming a SKU or
// location code missing locally are skipped with a warning rather than
// auto-created: a referential gap there means the products/locations stages
// have not run yet, and materializing orphans would hide that.
func (s *Service) SyncInventoryLevels(ctx context.Context, customerID uint) error {
	_, creds, ok, err := s.resolve(ctx, customerID, "inventory_levels")
	if err != nil || !ok {
		return err
	}

	upstream, err := s.client.GetInventory(ctx, creds)
	if err != nil {
		return fmt.Errorf("fetch inventory for customer %d: %w", customerID, err)
	}
	if len(upstream) == 0 {
		return nil
	}

	products, err := productIndex(ctx, s.store, customerID)
	if err != nil {
		return err
	}
	locations, err := locationIndex(ctx, s.store, customerID)
	if err != nil {
		return err
	}

	existing, err := s.store.LevelsByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	byKey := make(map[levelKey]models.InventoryLevel, len(existing))
	for _, lvl := range existing {
		byKey[levelKey{lvl.ProductID, lvl.LocationID}] = lvl
	}

	now := s.now().UTC()
	batch := make([]models.InventoryLevel, 0, len(upstream))
	skipped := 0

	for _, up := range upstream {
		productID, ok := products[up.Sku]
		if !ok {
			skipped++
			log.Printf("⚠️  Sync: customer %d inventory level skipped, unknown SKU %q", customerID, up.Sku)
			continue
		}
		locationID, ok := locations[up.LocationCode]
		if !ok {
			skipped++
			log.Printf("⚠️  Sync: customer %d inventory level skipped, unknown location %q", customerID, up.LocationCode)
			continue
		}

		if lvl, found := byKey[levelKey{productID, locationID}]; found {
			lvl.QuantityOnHand = up.QuantityOnHand
			lvl.QuantityAvailable = up.QuantityAvailable
			lvl.QuantityAllocated = up.QuantityAllocated
			lvl.UpdatedAt = now
			batch = append(batch, lvl)
		} else {
			batch = append(batch, models.InventoryLevel{
				CustomerID:        customerID,
				ProductID:         productID,
				LocationID:        locationID,
				QuantityOnHand:    up.QuantityOnHand,
				QuantityAvailable: up.QuantityAvailable,
				QuantityAllocated: up.QuantityAllocated,
				UpdatedAt:         now,
			})
		}
	}

	if err := s.store.SaveInventoryLevels(ctx, batch); err != nil {
		return fmt.Errorf("save inventory levels for customer %d: %w", customerID, err)
	}

	log.Printf("📊 Sync: customer %d inventory levels updated (%d saved, %d skipped)", customerID, len(batch), skipped)
	return nil
}
