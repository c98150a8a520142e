package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sebas-aldana/brm-client/internal/core/domain"
	"github.com/sebas-aldana/brm-client/internal/core/event"
	"github.com/sebas-aldana/brm-client/internal/port"
)

// InventoryKey is the persistence key for the inventory snapshot.
const InventoryKey = "products-storage"

// InventoryStore caches the product catalog. Every mutation is
// submit-then-refetch: after a successful write it unconditionally refetches
// the whole listing instead of patching the local snapshot, so the cache
// always converges to server truth.
type InventoryStore struct {
	*Store[domain.Product]
	svc port.InventoryService
}

// NewInventoryStore wires the cache to the inventory service. When bus is
// non-nil the store refetches on every completed purchase; that subscription
// is the single coupling between the inventory and order caches.
func NewInventoryStore(svc port.InventoryService, snapshots port.SnapshotStore, bus *event.Bus) *InventoryStore {
	s := &InventoryStore{
		Store: New(InventoryKey, svc.List, snapshots, false),
		svc:   svc,
	}
	if bus != nil {
		bus.Subscribe(event.PurchaseCompletedName, func(ctx context.Context, _ event.Event) {
			if err := s.FetchAll(ctx); err != nil {
				log.Error().Err(err).Msg("inventory refetch after purchase failed")
			}
		})
	}
	return s
}

// Product looks up a product in the current snapshot.
func (s *InventoryStore) Product(id string) (domain.Product, bool) {
	for _, p := range s.Items() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Search filters the snapshot by name or batch, case-insensitive. An empty
// term returns the full snapshot.
func (s *InventoryStore) Search(term string) []domain.Product {
	items := s.Items()
	if term == "" {
		return items
	}
	term = strings.ToLower(term)
	out := items[:0]
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.Batch), term) {
			out = append(out, p)
		}
	}
	return out
}

func (s *InventoryStore) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	created, err := s.svc.Create(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	if err := s.FetchAll(ctx); err != nil {
		return created, err
	}
	return created, nil
}

func (s *InventoryStore) Update(ctx context.Context, id string, upd port.ProductUpdate) (domain.Product, error) {
	updated, err := s.svc.Update(ctx, id, upd)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product %s: %w", id, err)
	}
	if err := s.FetchAll(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

func (s *InventoryStore) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return s.FetchAll(ctx)
}
