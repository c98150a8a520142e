package rest

import (
	"context"
	"net/http"

	"github.com/sebas-aldana/brm-client/internal/core/domain"
	"github.com/sebas-aldana/brm-client/internal/port"
)

const productsPath = "/products"

// InventoryClient implements port.InventoryService against the REST API.
type InventoryClient struct {
	*Client
}

func NewInventoryClient(c *Client) *InventoryClient {
	return &InventoryClient{Client: c}
}

func (c *InventoryClient) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, productsPath, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *InventoryClient) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	var created domain.Product
	if err := c.do(ctx, http.MethodPost, productsPath, p, &created); err != nil {
		return domain.Product{}, err
	}
	return created, nil
}

func (c *InventoryClient) Update(ctx context.Context, id string, upd port.ProductUpdate) (domain.Product, error) {
	var updated domain.Product
	if err := c.do(ctx, http.MethodPut, productsPath+"/"+id, upd, &updated); err != nil {
		return domain.Product{}, err
	}
	return updated, nil
}

func (c *InventoryClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, productsPath+"/"+id, nil, nil)
}
