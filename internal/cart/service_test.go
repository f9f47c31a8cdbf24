package cart

import (
	"errors"
	"testing"

	"github.com/dalkomstore/shop-backend/internal/catalog"
)

func newTestService(t *testing.T) (*Service, catalog.Repository) {
	t.Helper()
	products := catalog.NewInMemoryRepository([]catalog.Product{
		{ID: 1, Name: "Hand cream", Price: 3500, Stock: 10, Status: catalog.StatusOnSale},
		{ID: 2, Name: "Lip balm", Price: 1200, Stock: 5, Status: catalog.StatusOnSale},
	})
	return NewService(NewInMemoryRepository(products)), products
}

func TestAddToCartMergesSameProduct(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.AddToCart(1, 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	items, err := svc.AddToCart(1, 1, 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddToCartRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.AddToCart(1, 1, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.AddToCart(1, 999, 1); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected catalog.ErrNotFound, got %v", err)
	}
}

func TestGetCartForNewUserIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	items, err := svc.GetCart(42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}
}

func TestUpdateQuantityBelowOneRemovesLine(t *testing.T) {
	svc, _ := newTestService(t)

	items, err := svc.AddToCart(1, 1, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err = svc.UpdateQuantity(1, items[0].ItemID, 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected line removed, got %d items", len(items))
	}
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.UpdateQuantity(1, 99, 3); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.AddToCart(1, 1, 1); err != nil {
		t.Fatalf("add user 1: %v", err)
	}
	if _, err := svc.AddToCart(2, 2, 4); err != nil {
		t.Fatalf("add user 2: %v", err)
	}

	if err := svc.ClearCart(1); err != nil {
		t.Fatalf("clear: %v", err)
	}

	other, err := svc.GetCart(2)
	if err != nil {
		t.Fatalf("get user 2: %v", err)
	}
	if len(other) != 1 || other[0].Quantity != 4 {
		t.Fatalf("user 2 cart disturbed: %+v", other)
	}
}

func TestGetCartDropsDeletedProducts(t *testing.T) {
	svc, products := newTestService(t)

	if _, err := svc.AddToCart(1, 1, 2); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if _, err := svc.AddToCart(1, 2, 1); err != nil {
		t.Fatalf("add second: %v", err)
	}

	if err := products.SoftDelete(1); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	items, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(items) != 1 || items[0].Product.ID != 2 {
		t.Fatalf("expected only the surviving product, got %+v", items)
	}
}

func TestCartLinesCarryProductDetails(t *testing.T) {
	svc, _ := newTestService(t)

	items, err := svc.AddToCart(1, 2, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if items[0].Name != "Lip balm" || items[0].Price != 1200 {
		t.Fatalf("expected product details on the line, got %+v", items[0])
	}
}
