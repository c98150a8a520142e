package store

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sebas-aldana/brm-client/internal/core/domain"
	"github.com/sebas-aldana/brm-client/internal/core/event"
	"github.com/sebas-aldana/brm-client/internal/port"
)

// Fake port.InventoryService tracking call counts.
type fakeInventoryService struct {
	mu       sync.Mutex
	products []domain.Product
	lists    int
	writeErr error
}

func (f *fakeInventoryService) List(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeInventoryService) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return domain.Product{}, f.writeErr
	}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeInventoryService) Update(ctx context.Context, id string, upd port.ProductUpdate) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return domain.Product{}, f.writeErr
	}
	for i, p := range f.products {
		if p.ID == id {
			if upd.Name != nil {
				f.products[i].Name = *upd.Name
			}
			if upd.AvailableQuantity != nil {
				f.products[i].AvailableQuantity = *upd.AvailableQuantity
			}
			return f.products[i], nil
		}
	}
	return domain.Product{}, &domain.ServiceError{Status: 404, Message: "product not found"}
}

func (f *fakeInventoryService) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return &domain.ServiceError{Status: 404, Message: "product not found"}
}

func (f *fakeInventoryService) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func catalogProduct(id, name, batch string, available int) domain.Product {
	return domain.Product{
		ID:                id,
		Name:              name,
		Batch:             batch,
		Price:             decimal.NewFromInt(10),
		AvailableQuantity: available,
	}
}

func TestInventory_ProductLookup(t *testing.T) {
	svc := &fakeInventoryService{products: []domain.Product{
		catalogProduct("p1", "hammer", "L-01", 5),
		catalogProduct("p2", "nails", "L-02", 100),
	}}
	inv := NewInventoryStore(svc, nil, nil)
	require.NoError(t, inv.FetchAll(context.Background()))

	p, ok := inv.Product("p2")
	require.True(t, ok)
	require.Equal(t, "nails", p.Name)

	_, ok = inv.Product("ghost")
	require.False(t, ok)
}

func TestInventory_Search(t *testing.T) {
	svc := &fakeInventoryService{products: []domain.Product{
		catalogProduct("p1", "Claw Hammer", "L-01", 5),
		catalogProduct("p2", "Nails", "L-02", 100),
		catalogProduct("p3", "Sledgehammer", "HAM-9", 2),
	}}
	inv := NewInventoryStore(svc, nil, nil)
	require.NoError(t, inv.FetchAll(context.Background()))

	require.Len(t, inv.Search(""), 3)
	require.Len(t, inv.Search("hammer"), 2, "matches name, case-insensitive")
	require.Len(t, inv.Search("ham-9"), 1, "matches batch too")
	require.Empty(t, inv.Search("screwdriver"))
}

func TestInventory_MutationsRefetch(t *testing.T) {
	svc := &fakeInventoryService{products: []domain.Product{
		catalogProduct("p1", "hammer", "L-01", 5),
	}}
	inv := NewInventoryStore(svc, nil, nil)
	ctx := context.Background()
	require.NoError(t, inv.FetchAll(ctx))
	base := svc.listCalls()

	_, err := inv.Create(ctx, catalogProduct("p2", "nails", "L-02", 100))
	require.NoError(t, err)
	require.Equal(t, base+1, svc.listCalls(), "create must refetch exactly once")
	_, ok := inv.Product("p2")
	require.True(t, ok, "snapshot converges to server truth after create")

	newName := "framing hammer"
	_, err = inv.Update(ctx, "p1", port.ProductUpdate{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, base+2, svc.listCalls(), "update must refetch exactly once")
	p, _ := inv.Product("p1")
	require.Equal(t, "framing hammer", p.Name)

	require.NoError(t, inv.Delete(ctx, "p2"))
	require.Equal(t, base+3, svc.listCalls(), "delete must refetch exactly once")
	_, ok = inv.Product("p2")
	require.False(t, ok)
}

func TestInventory_FailedMutationDoesNotRefetch(t *testing.T) {
	svc := &fakeInventoryService{products: []domain.Product{
		catalogProduct("p1", "hammer", "L-01", 5),
	}}
	inv := NewInventoryStore(svc, nil, nil)
	ctx := context.Background()
	require.NoError(t, inv.FetchAll(ctx))
	base := svc.listCalls()

	svc.writeErr = &domain.ServiceError{Status: 503, Message: "maintenance"}

	_, err := inv.Create(ctx, catalogProduct("p2", "nails", "L-02", 100))
	require.Error(t, err)
	_, err = inv.Update(ctx, "p1", port.ProductUpdate{})
	require.Error(t, err)
	require.Error(t, inv.Delete(ctx, "p1"))

	require.Equal(t, base, svc.listCalls(), "failed writes must not trigger refetches")
}

func TestInventory_RefetchesOnPurchaseCompleted(t *testing.T) {
	svc := &fakeInventoryService{products: []domain.Product{
		catalogProduct("p1", "hammer", "L-01", 5),
	}}
	bus := event.NewBus()
	inv := NewInventoryStore(svc, nil, bus)
	ctx := context.Background()
	require.NoError(t, inv.FetchAll(ctx))
	base := svc.listCalls()

	bus.Publish(ctx, event.PurchaseCompleted{
		BaseEvent:  event.NewBaseEvent(),
		PurchaseID: "purchase-1",
		ClientID:   "client-1",
	})

	require.Equal(t, base+1, svc.listCalls(), "purchase completion must trigger exactly one refetch")
}
