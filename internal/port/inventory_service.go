package port

import (
	"context"

	"github.com/sebas-aldana/brm-client/internal/core/domain"
)

// ProductUpdate carries the fields an inventory edit may change. Nil fields
// are left untouched server-side.
type ProductUpdate struct {
	Batch             *string `json:"batch,omitempty"`
	Name              *string `json:"name,omitempty"`
	Price             *string `json:"price,omitempty"`
	AvailableQuantity *int    `json:"availableQuantity,omitempty"`
}

type InventoryService interface {
	// List returns the full authoritative product catalog.
	List(ctx context.Context) ([]domain.Product, error)

	// Create registers a new product and returns it with server-assigned fields.
	Create(ctx context.Context, p domain.Product) (domain.Product, error)

	// Update applies a partial edit to an existing product.
	Update(ctx context.Context, id string, upd ProductUpdate) (domain.Product, error)

	// Delete removes a product from the catalog.
	Delete(ctx context.Context, id string) error
}
