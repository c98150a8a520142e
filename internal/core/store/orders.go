package store

import (
	"github.com/sebas-aldana/brm-client/internal/core/domain"
	"github.com/sebas-aldana/brm-client/internal/port"
)

// OrdersKey is the persistence key for the purchase-history snapshot.
const OrdersKey = "purchase-storage"

// OrderStore caches the purchase history. Purchases are created only by the
// order service; they show up here via the next refetch. Unlike the
// inventory cache, its failure flags persist across restarts.
type OrderStore struct {
	*Store[domain.Purchase]
}

func NewOrderStore(svc port.OrderService, snapshots port.SnapshotStore) *OrderStore {
	return &OrderStore{
		Store: New(OrdersKey, svc.List, snapshots, true),
	}
}
