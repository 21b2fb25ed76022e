package sync

import (
	"context"
	"fmt"
	"log"

	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
)

// SyncProducts mirrors the upstream product catalog into the local products
// table, upserting by (CustomerID, SKU). Mutable fields are overwritten
// unconditionally; products absent from the feed are left untouched.
func (s *Service) SyncProducts(ctx context.Context, customerID uint) error {
	_, creds, ok, err := s.resolve(ctx, customerID, "products")
	if err != nil || !ok {
		return err
	}

	upstream, err := s.client.GetProducts(ctx, creds)
	if err != nil {
		return fmt.Errorf("fetch products for customer %d: %w", customerID, err)
	}
	if len(upstream) == 0 {
		return nil
	}

	existing, err := s.store.ProductsByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	bySKU := make(map[string]models.Product, len(existing))
	for _, p := range existing {
		bySKU[p.SKU] = p
	}

	now := s.now().UTC()
	batch := make([]models.Product, 0, len(upstream))
	created := 0

	for _, up := range upstream {
		if up.Sku == "" {
			continue
		}
		if local, found := bySKU[up.Sku]; found {
			local.Name = up.Description
			local.Description = up.LongDescription
			local.Classification = up.Classification
			local.Cost = up.Cost
			local.RetailPrice = up.RetailPrice
			local.UpdatedAt = now
			batch = append(batch, local)
		} else {
			created++
			batch = append(batch, models.Product{
				CustomerID:     customerID,
				SKU:            up.Sku,
				Name:           up.Description,
				Description:    up.LongDescription,
				Classification: up.Classification,
				Cost:           up.Cost,
				RetailPrice:    up.RetailPrice,
				CreatedAt:      now,
				UpdatedAt:      now,
			})
		}
	}

	if err := s.store.SaveProducts(ctx, batch); err != nil {
		return fmt.Errorf("save products for customer %d: %w", customerID, err)
	}

	log.Printf("📦 Sync: customer %d products updated (%d total, %d new)", customerID, len(batch), created)
	return nil
}

// SyncLocations mirrors upstream warehouse locations, upserting by
// (CustomerID, Code). Same shape as products plus the active flag and
// warehouse label.
func (s *Service) SyncLocations(ctx context.Context, customerID uint) error {
	_, creds, ok, err := s.resolve(ctx, customerID, "locations")
	if err != nil || !ok {
		return err
	}

	upstream, err := s.client.GetLocations(ctx, creds)
	if err != nil {
		return fmt.Errorf("fetch locations for customer %d: %w", customerID, err)
	}
	if len(upstream) == 0 {
		return nil
	}

	existing, err := s.store.LocationsByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	byCode := make(map[string]models.Location, len(existing))
	for _, l := range existing {
		byCode[l.Code] = l
	}

	now := s.now().UTC()
	batch := make([]models.Location, 0, len(upstream))
	created := 0

	for _, up := range upstream {
		if up.LocationCode == "" {
			continue
		}
		if local, found := byCode[up.LocationCode]; found {
			local.Name = up.Description
			local.Warehouse = up.Warehouse
			local.IsActive = up.IsActive
			local.UpdatedAt = now
			batch = append(batch, local)
		} else {
			created++
			batch = append(batch, models.Location{
				CustomerID: customerID,
				Code:       up.LocationCode,
				Name:       up.Description,
				Warehouse:  up.Warehouse,
				IsActive:   up.IsActive,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
	}

	if err := s.store.SaveLocations(ctx, batch); err != nil {
		return fmt.Errorf("save locations for customer %d: %w", customerID, err)
	}

	log.Printf("📍 Sync: customer %d locations updated (%d total, %d new)", customerID, len(batch), created)
	return nil
}
