package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity below which a product counts as low stock.
const LowStockThreshold = 10

type StockLevel string

const (
	StockOut       StockLevel = "out_of_stock"
	StockLow       StockLevel = "low"
	StockAvailable StockLevel = "available"
)

// Product is the authoritative inventory record as served by the inventory
// service. AvailableQuantity is only ever changed server-side; the client
// reads it, never decrements it.
type Product struct {
	ID                string          `json:"id"`
	Batch             string          `json:"batch"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	AvailableQuantity int             `json:"availableQuantity"`
	EntryDate         time.Time       `json:"entryDate"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// CanIncrement reports whether one more unit of p may be added to a cart that
// already holds currentCartQty units. It is the single gate for cart growth.
func CanIncrement(p Product, currentCartQty int) bool {
	return p.AvailableQuantity > 0 && currentCartQty < p.AvailableQuantity
}

// StockLevelOf classifies a product's stock. Display and the increment gate
// both derive from the same quantity, so they cannot disagree.
func StockLevelOf(p Product) StockLevel {
	switch {
	case p.AvailableQuantity <= 0:
		return StockOut
	case p.AvailableQuantity < LowStockThreshold:
		return StockLow
	default:
		return StockAvailable
	}
}
