package port

import (
	"context"

	"github.com/sebas-aldana/brm-client/internal/core/domain"
)

type OrderService interface {
	// List returns the client's purchase history, newest first.
	List(ctx context.Context) ([]domain.Purchase, error)

	// Create submits a purchase. The server prices every line, computes the
	// total and decrements stock atomically; of two requests contending for
	// the last unit exactly one succeeds.
	Create(ctx context.Context, req domain.PurchaseRequest) (domain.Purchase, error)
}
