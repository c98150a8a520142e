package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sebas-aldana/brm-client/internal/core/domain"
	"github.com/sebas-aldana/brm-client/internal/core/event"
	"github.com/sebas-aldana/brm-client/internal/port"
)

// DefaultDismissAfter is how long a purchase confirmation stays up before
// dismissing itself.
const DefaultDismissAfter = 5 * time.Second

// Refresher is the slice of a cache the orchestrator needs to reconcile it.
type Refresher interface {
	FetchAll(ctx context.Context) error
}

// Checkout converts the cart into a purchase against the order service. On
// success it clears the cart, publishes a purchase-completed event (which the
// inventory cache subscribes to) and refetches the purchase history. On any
// failure the cart is left untouched so the user can adjust and retry; no
// automatic retry is attempted.
type Checkout struct {
	cart         *Cart
	orders       port.OrderService
	identity     port.Identity
	bus          *event.Bus
	history      Refresher
	dismissAfter time.Duration
}

// NewCheckout wires the orchestrator. history may be nil when no purchase
// history cache is kept; dismissAfter of 0 means DefaultDismissAfter.
func NewCheckout(cart *Cart, orders port.OrderService, identity port.Identity, bus *event.Bus, history Refresher, dismissAfter time.Duration) *Checkout {
	if dismissAfter <= 0 {
		dismissAfter = DefaultDismissAfter
	}
	return &Checkout{
		cart:         cart,
		orders:       orders,
		identity:     identity,
		bus:          bus,
		history:      history,
		dismissAfter: dismissAfter,
	}
}

// Submit sends the current cart as a purchase. An empty cart fails with
// domain.ErrEmptyCart before any network call. The request carries only
// product ids and quantities — never prices — so the authoritative total is
// always computed server-side.
func (c *Checkout) Submit(ctx context.Context) (domain.Purchase, *Confirmation, error) {
	lines := c.cart.Lines()
	if len(lines) == 0 {
		return domain.Purchase{}, nil, domain.ErrEmptyCart
	}

	clientID, err := c.identity.ClientID(ctx)
	if err != nil {
		return domain.Purchase{}, nil, fmt.Errorf("resolve client id: %w", err)
	}

	req := domain.PurchaseRequest{
		ClientID:       clientID,
		IdempotencyKey: uuid.New().String(),
		Items:          make([]domain.RequestItem, 0, len(lines)),
	}
	for _, line := range lines {
		req.Items = append(req.Items, domain.RequestItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		})
	}

	purchase, err := c.orders.Create(ctx, req)
	if err != nil {
		// Cart stays intact; the caller surfaces the message and may retry.
		return domain.Purchase{}, nil, fmt.Errorf("submit purchase: %w", err)
	}

	c.cart.Clear()

	if c.bus != nil {
		evt := event.PurchaseCompleted{
			BaseEvent:  event.NewBaseEvent(),
			PurchaseID: purchase.ID,
			ClientID:   purchase.ClientID,
		}
		c.bus.Publish(ctx, evt)
	}

	if c.history != nil {
		if err := c.history.FetchAll(ctx); err != nil {
			// The purchase is committed; a stale history view corrects itself
			// on the next refetch.
			log.Error().Err(err).Msg("purchase history refetch failed")
		}
	}

	log.Info().Str("purchase", purchase.ID).Str("total", purchase.Total.String()).Msg("purchase completed")
	return purchase, newConfirmation(purchase, c.dismissAfter), nil
}
