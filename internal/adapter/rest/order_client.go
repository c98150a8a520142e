package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sebas-aldana/brm-client/internal/core/domain"
)

const purchasesPath = "/purchases"

// OrderClient implements port.OrderService against the REST API.
type OrderClient struct {
	*Client
}

func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{Client: c}
}

func (c *OrderClient) List(ctx context.Context) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	if err := c.do(ctx, http.MethodGet, purchasesPath, nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// Create submits the purchase. A response the server rejected for
// insufficient stock is wrapped with domain.ErrStockConflict so callers can
// tell "oversold" from "offline" without parsing message text.
func (c *OrderClient) Create(ctx context.Context, req domain.PurchaseRequest) (domain.Purchase, error) {
	var purchase domain.Purchase
	if err := c.do(ctx, http.MethodPost, purchasesPath, req, &purchase); err != nil {
		var se *domain.ServiceError
		if errors.As(err, &se) && domain.IsStockConflict(err) {
			return domain.Purchase{}, fmt.Errorf("%w: %s", domain.ErrStockConflict, se.Message)
		}
		return domain.Purchase{}, err
	}
	return purchase, nil
}
