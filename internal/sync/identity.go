package sync

import (
	"context"

	"github.com/davebaumann/whoptix-saas-sub000/internal/store"
)

// Identity maps translate upstream natural keys into local row ids. They are
// rebuilt fresh from a snapshot read on every sync invocation and never
// cached across calls or customers; correctness over cleverness.

// productIndex builds the SKU -> ProductID map for one customer.
func productIndex(ctx context.Context, st store.Store, customerID uint) (map[string]uint, error) {
	products, err := st.ProductsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	index := make(map[string]uint, len(products))
	for _, p := range products {
		index[p.SKU] = p.ID
	}
	return index, nil
}

// locationIndex builds the location Code -> LocationID map for one customer.
func locationIndex(ctx context.Context, st store.Store, customerID uint) (map[string]uint, error) {
	locations, err := st.LocationsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	index := make(map[string]uint, len(locations))
	for _, l := range locations {
		index[l.Code] = l.ID
	}
	return index, nil
}
