package service

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sebas-aldana/brm-client/internal/core/domain"
)

// Mock ProductIndex
type stubIndex struct {
	mu       sync.Mutex
	products map[string]domain.Product
}

func newStubIndex(products ...domain.Product) *stubIndex {
	idx := &stubIndex{products: make(map[string]domain.Product)}
	for _, p := range products {
		idx.products[p.ID] = p
	}
	return idx
}

func (s *stubIndex) Product(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *stubIndex) set(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *stubIndex) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

func testProduct(id string, price int64, available int) domain.Product {
	return domain.Product{
		ID:                id,
		Batch:             "B-" + id,
		Name:              "product " + id,
		Price:             decimal.NewFromInt(price),
		AvailableQuantity: available,
	}
}

func TestAdd_CapsAtAvailableQuantity(t *testing.T) {
	idx := newStubIndex(testProduct("a", 10, 3))
	cart := NewCart(idx)

	for i := 0; i < 10; i++ {
		cart.Add("a")
	}

	if got := cart.Quantity("a"); got != 3 {
		t.Errorf("expected quantity capped at 3, got %d", got)
	}
}

func TestAdd_OutOfStockIsNoop(t *testing.T) {
	idx := newStubIndex(testProduct("a", 10, 0))
	cart := NewCart(idx)

	cart.Add("a")

	if got := cart.Len(); got != 0 {
		t.Errorf("expected no lines, got %d", got)
	}
}

func TestAdd_UnknownProductIsNoop(t *testing.T) {
	cart := NewCart(newStubIndex())

	cart.Add("ghost")

	if got := cart.Len(); got != 0 {
		t.Errorf("expected no lines, got %d", got)
	}
}

func TestRemoveOne_DeletesLineAtQuantityOne(t *testing.T) {
	idx := newStubIndex(testProduct("a", 10, 5))
	cart := NewCart(idx)

	cart.Add("a")
	cart.RemoveOne("a")

	if got := cart.Quantity("a"); got != 0 {
		t.Errorf("expected quantity 0, got %d", got)
	}
	if got := cart.Len(); got != 0 {
		t.Errorf("expected line deleted, got %d lines", got)
	}
}

func TestRemoveOne_Decrements(t *testing.T) {
	idx := newStubIndex(testProduct("a", 10, 5))
	cart := NewCart(idx)

	cart.Add("a")
	cart.Add("a")
	cart.Add("a")
	cart.RemoveOne("a")

	if got := cart.Quantity("a"); got != 2 {
		t.Errorf("expected quantity 2, got %d", got)
	}
}

func TestRemove_DeletesRegardlessOfQuantity(t *testing.T) {
	idx := newStubIndex(testProduct("a", 10, 5))
	cart := NewCart(idx)

	cart.Add("a")
	cart.Add("a")
	cart.Remove("a")

	if got := cart.Len(); got != 0 {
		t.Errorf("expected empty cart, got %d lines", got)
	}
}

func TestTotalAndCount(t *testing.T) {
	idx := newStubIndex(testProduct("a", 10, 5), testProduct("b", 7, 5))
	cart := NewCart(idx)

	if !cart.Total().IsZero() {
		t.Errorf("empty cart total = %s, want 0", cart.Total())
	}

	cart.Add("a")
	cart.Add("a")
	cart.Add("b")

	if want := decimal.NewFromInt(27); !cart.Total().Equal(want) {
		t.Errorf("total = %s, want %s", cart.Total(), want)
	}
	if got := cart.Count(); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
	if got := cart.Len(); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}
}

func TestTotal_ReflectsRepricing(t *testing.T) {
	idx := newStubIndex(testProduct("a", 10, 5))
	cart := NewCart(idx)

	cart.Add("a")
	cart.Add("a")

	// Price edit lands in the inventory cache after the lines were added.
	idx.set(testProduct("a", 25, 5))

	if want := decimal.NewFromInt(50); !cart.Total().Equal(want) {
		t.Errorf("total = %s, want %s after repricing", cart.Total(), want)
	}
}

func TestVanishedProduct_RemovableButNotIncrementable(t *testing.T) {
	idx := newStubIndex(testProduct("a", 10, 5))
	cart := NewCart(idx)

	cart.Add("a")
	cart.Add("a")
	idx.remove("a")

	cart.Add("a")
	if got := cart.Quantity("a"); got != 2 {
		t.Errorf("vanished product grew to %d, want 2", got)
	}

	// Total falls back to the last-known price.
	if want := decimal.NewFromInt(20); !cart.Total().Equal(want) {
		t.Errorf("total = %s, want %s", cart.Total(), want)
	}

	cart.RemoveOne("a")
	cart.RemoveOne("a")
	if got := cart.Len(); got != 0 {
		t.Errorf("expected vanished product removable, got %d lines", got)
	}
}

func TestClear(t *testing.T) {
	idx := newStubIndex(testProduct("a", 10, 5), testProduct("b", 7, 5))
	cart := NewCart(idx)

	cart.Add("a")
	cart.Add("b")
	cart.Clear()

	if got := cart.Len(); got != 0 {
		t.Errorf("expected empty cart after clear, got %d lines", got)
	}
	if !cart.Total().IsZero() {
		t.Errorf("expected zero total after clear, got %s", cart.Total())
	}
}

func TestLines_SortedByProductID(t *testing.T) {
	idx := newStubIndex(testProduct("b", 7, 5), testProduct("a", 10, 5), testProduct("c", 3, 5))
	cart := NewCart(idx)

	cart.Add("b")
	cart.Add("a")
	cart.Add("c")

	lines := cart.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, want := range []string{"a", "b", "c"} {
		if lines[i].Product.ID != want {
			t.Errorf("lines[%d] = %s, want %s", i, lines[i].Product.ID, want)
		}
	}
}

// Scenario from the shop flow: availableQuantity=3, price=10; three adds fill
// the cart, the fourth is silently capped.
func TestScenario_ThreeUnitsThenCap(t *testing.T) {
	idx := newStubIndex(testProduct("A", 10, 3))
	cart := NewCart(idx)

	for i := 0; i < 3; i++ {
		cart.Add("A")
	}
	if got := cart.Quantity("A"); got != 3 {
		t.Fatalf("quantity = %d, want 3", got)
	}
	if want := decimal.NewFromInt(30); !cart.Total().Equal(want) {
		t.Fatalf("total = %s, want %s", cart.Total(), want)
	}

	cart.Add("A")
	if got := cart.Quantity("A"); got != 3 {
		t.Errorf("fourth add changed quantity to %d, want 3", got)
	}
}
