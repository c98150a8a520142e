package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one line of a committed purchase. Name, Batch and Price are a
// denormalized snapshot of the product as of purchase time; the live product
// may be repriced or deleted afterwards without touching purchase history.
type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Batch     string          `json:"batch"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Purchase is created exclusively by the order service. Total is computed
// server-side and trusted as-is; the client never recomputes or overrides it.
type Purchase struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"clientId"`
	Total     decimal.Decimal `json:"total"`
	Items     []LineItem      `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
}

// RequestItem deliberately carries no price: the server prices every line
// from its own records so a client can never dictate the total.
type RequestItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PurchaseRequest is the submission payload. IdempotencyKey is generated
// fresh per submission so a retried request cannot double-commit.
type PurchaseRequest struct {
	ClientID       string        `json:"clientId"`
	IdempotencyKey string        `json:"idempotencyKey"`
	Items          []RequestItem `json:"items"`
}
