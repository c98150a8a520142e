package event

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type EventType string

const (
	PurchaseCompletedName EventType = "purchase.completed"
)

type Event interface {
	Type() EventType
}

type BaseEvent struct {
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBaseEvent() BaseEvent {
	return BaseEvent{
		EventID:   uuid.New().String(),
		CreatedAt: time.Now(),
	}
}

// PurchaseCompleted announces a committed purchase. The inventory cache
// subscribes to it: purchase confirmation is the only event outside direct
// product edits that changes stock.
type PurchaseCompleted struct {
	BaseEvent
	PurchaseID string
	ClientID   string
}

func (e PurchaseCompleted) Type() EventType {
	return PurchaseCompletedName
}

type Handler func(ctx context.Context, evt Event)

// Bus is a small in-process pub/sub. Publish dispatches synchronously in
// subscription order; handlers must not publish back into the bus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]Handler)}
}

func (b *Bus) Subscribe(t EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

func (b *Bus) Publish(ctx context.Context, evt Event) {
	b.mu.RLock()
	hs := append([]Handler(nil), b.handlers[evt.Type()]...)
	b.mu.RUnlock()

	log.Debug().Str("event", string(evt.Type())).Int("handlers", len(hs)).Msg("publishing event")
	for _, h := range hs {
		h(ctx, evt)
	}
}
