package order

import (
	"errors"
	"sync"
	"testing"

	"github.com/dalkomstore/shop-backend/internal/cart"
	"github.com/dalkomstore/shop-backend/internal/catalog"
)

func newWorld(t *testing.T, products []catalog.Product) (*Service, *catalog.InMemoryRepository, *cart.InMemoryRepository) {
	t.Helper()
	prodRepo := catalog.NewInMemoryRepository(products)
	cartRepo := cart.NewInMemoryRepository(prodRepo)
	repo := NewInMemoryRepository(prodRepo, cartRepo)
	svc := NewService(repo, cart.NewService(cartRepo), nil)
	return svc, prodRepo, cartRepo
}

func validShipping() ShippingInfo {
	return ShippingInfo{
		RecipientName:   "Kim Jiyoung",
		RecipientPhone:  "010-1234-5678",
		ShippingAddress: "12 Teheran-ro, Seoul",
		DepositorName:   "Kim Jiyoung",
	}
}

func mustAdd(t *testing.T, carts *cart.InMemoryRepository, userID, productID, qty int) {
	t.Helper()
	if _, err := carts.AddItem(userID, productID, qty); err != nil {
		t.Fatalf("seeding cart: %v", err)
	}
}

func stockOf(t *testing.T, products *catalog.InMemoryRepository, id int) int {
	t.Helper()
	p, err := products.GetByID(id)
	if err != nil {
		t.Fatalf("product %d: %v", id, err)
	}
	return p.Stock
}

func TestPlaceOrder_Success(t *testing.T) {
	svc, products, carts := newWorld(t, []catalog.Product{
		{ID: 1, Name: "Lavender candle", Price: 1000, Stock: 10, Status: catalog.StatusOnSale},
		{ID: 2, Name: "Ceramic diffuser", Price: 5000, Stock: 4, Status: catalog.StatusOnSale},
	})
	mustAdd(t, carts, 7, 1, 2)
	mustAdd(t, carts, 7, 2, 1)

	ord, err := svc.PlaceOrder(7, validShipping())
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if ord.Status != StatusPending {
		t.Errorf("expected status PENDING, got %s", ord.Status)
	}
	if ord.Total != 7000 {
		t.Errorf("expected total 7000, got %d", ord.Total)
	}
	if ord.Total != ord.ItemsTotal() {
		t.Errorf("order total %d does not equal sum of line subtotals %d", ord.Total, ord.ItemsTotal())
	}
	if len(ord.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(ord.Items))
	}
	if ord.Items[0].UnitPrice != 1000 || ord.Items[1].UnitPrice != 5000 {
		t.Errorf("unit price snapshots wrong: %+v", ord.Items)
	}
	if ord.OrderNo == "" {
		t.Error("expected a generated order number")
	}

	if got := stockOf(t, products, 1); got != 8 {
		t.Errorf("product 1 stock: expected 8, got %d", got)
	}
	if got := stockOf(t, products, 2); got != 3 {
		t.Errorf("product 2 stock: expected 3, got %d", got)
	}

	items, err := carts.GetItems(7)
	if err != nil {
		t.Fatalf("reading cart after placement: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart after placement, got %d items", len(items))
	}
}

func TestPlaceOrder_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	svc, products, carts := newWorld(t, []catalog.Product{
		{ID: 1, Name: "Soy candle", Price: 2000, Stock: 5, Status: catalog.StatusOnSale},
	})
	mustAdd(t, carts, 3, 1, 1)

	ord, err := svc.PlaceOrder(3, validShipping())
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	p, _ := products.GetByID(1)
	p.Price = 9999
	if _, err := products.Update(1, p); err != nil {
		t.Fatalf("price update: %v", err)
	}

	got, err := svc.GetForUser(3, ord.ID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if got.Items[0].UnitPrice != 2000 || got.Total != 2000 {
		t.Errorf("order snapshot drifted after price change: %+v", got)
	}
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	svc, products, carts := newWorld(t, []catalog.Product{
		{ID: 1, Name: "Hand cream", Price: 3000, Stock: 3, Status: catalog.StatusOnSale},
	})
	mustAdd(t, carts, 5, 1, 5)

	_, err := svc.PlaceOrder(5, validShipping())
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.ProductName != "Hand cream" {
		t.Errorf("error does not name the offending product: %v", stockErr)
	}

	// nothing may have changed
	if got := stockOf(t, products, 1); got != 3 {
		t.Errorf("stock changed on failed placement: %d", got)
	}
	items, _ := carts.GetItems(5)
	if len(items) != 1 {
		t.Errorf("cart changed on failed placement: %d items", len(items))
	}
}

func TestPlaceOrder_PartialFailureRollsBackEverything(t *testing.T) {
	svc, products, carts := newWorld(t, []catalog.Product{
		{ID: 1, Name: "In stock", Price: 1000, Stock: 10, Status: catalog.StatusOnSale},
		{ID: 2, Name: "Short stock", Price: 1000, Stock: 1, Status: catalog.StatusOnSale},
	})
	mustAdd(t, carts, 9, 1, 2)
	mustAdd(t, carts, 9, 2, 3)

	_, err := svc.PlaceOrder(9, validShipping())
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.ProductID != 2 {
		t.Errorf("expected product 2 named, got %d", stockErr.ProductID)
	}

	// the passing first line must not have been decremented
	if got := stockOf(t, products, 1); got != 10 {
		t.Errorf("first line stock decremented despite abort: %d", got)
	}
	if got := stockOf(t, products, 2); got != 1 {
		t.Errorf("second line stock changed: %d", got)
	}
	items, _ := carts.GetItems(9)
	if len(items) != 2 {
		t.Errorf("cart changed on failed placement: %d items", len(items))
	}
	if orders, _ := svc.ListForUser(9); len(orders) != 0 {
		t.Errorf("order persisted despite abort: %d orders", len(orders))
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc, _, _ := newWorld(t, []catalog.Product{
		{ID: 1, Name: "Anything", Price: 100, Stock: 1, Status: catalog.StatusOnSale},
	})

	_, err := svc.PlaceOrder(11, validShipping())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestPlaceOrder_MissingShippingFields(t *testing.T) {
	svc, products, carts := newWorld(t, []catalog.Product{
		{ID: 1, Name: "Candle", Price: 1000, Stock: 5, Status: catalog.StatusOnSale},
	})
	mustAdd(t, carts, 2, 1, 1)

	info := validShipping()
	info.DepositorName = ""
	_, err := svc.PlaceOrder(2, info)

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validation.Field != "depositorName" {
		t.Errorf("expected depositorName named, got %q", validation.Field)
	}
	if got := stockOf(t, products, 1); got != 5 {
		t.Errorf("stock changed on validation failure: %d", got)
	}
	if orders, _ := svc.ListForUser(2); len(orders) != 0 {
		t.Errorf("order created despite validation failure")
	}
}

func TestPlaceOrder_ConcurrentBuyersLastUnit(t *testing.T) {
	svc, products, carts := newWorld(t, []catalog.Product{
		{ID: 1, Name: "Last one", Price: 4000, Stock: 1, Status: catalog.StatusOnSale},
	})
	mustAdd(t, carts, 100, 1, 1)
	mustAdd(t, carts, 200, 1, 1)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, userID := range []int{100, 200} {
		wg.Add(1)
		go func(i, userID int) {
			defer wg.Done()
			_, results[i] = svc.PlaceOrder(userID, validShipping())
		}(i, userID)
	}
	wg.Wait()

	successes, stockFailures := 0, 0
	for _, err := range results {
		var stockErr *InsufficientStockError
		switch {
		case err == nil:
			successes++
		case errors.As(err, &stockErr):
			stockFailures++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || stockFailures != 1 {
		t.Fatalf("expected exactly one winner and one stock failure, got %d/%d", successes, stockFailures)
	}
	if got := stockOf(t, products, 1); got != 0 {
		t.Errorf("expected final stock 0, got %d", got)
	}
}

func TestPlaceOrder_DoubleSubmitSecondFailsOnEmptyCart(t *testing.T) {
	svc, _, carts := newWorld(t, []catalog.Product{
		{ID: 1, Name: "Candle", Price: 1000, Stock: 5, Status: catalog.StatusOnSale},
	})
	mustAdd(t, carts, 4, 1, 1)

	if _, err := svc.PlaceOrder(4, validShipping()); err != nil {
		t.Fatalf("first placement failed: %v", err)
	}
	_, err := svc.PlaceOrder(4, validShipping())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("second submit should fail on empty cart, got %v", err)
	}
}

func TestPay_FlipsPendingToPaidOnce(t *testing.T) {
	svc, _, carts := newWorld(t, []catalog.Product{
		{ID: 1, Name: "Candle", Price: 1500, Stock: 2, Status: catalog.StatusOnSale},
	})
	mustAdd(t, carts, 6, 1, 2)

	ord, err := svc.PlaceOrder(6, validShipping())
	if err != nil {
		t.Fatalf("placement: %v", err)
	}

	paid, err := svc.Pay(6, ord.ID)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.Status != StatusPaid {
		t.Errorf("expected PAID, got %s", paid.Status)
	}
	if paid.Total != ord.Total {
		t.Errorf("pay changed the total: %d -> %d", ord.Total, paid.Total)
	}

	if _, err := svc.Pay(6, ord.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second pay should be rejected, got %v", err)
	}

	if _, err := svc.Pay(999, ord.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("pay by another user should be rejected, got %v", err)
	}
}

func TestAdminUpdate_TransitionRules(t *testing.T) {
	svc, _, carts := newWorld(t, []catalog.Product{
		{ID: 1, Name: "Candle", Price: 1000, Stock: 5, Status: catalog.StatusOnSale},
	})
	mustAdd(t, carts, 8, 1, 1)
	ord, err := svc.PlaceOrder(8, validShipping())
	if err != nil {
		t.Fatalf("placement: %v", err)
	}

	// PENDING cannot jump straight to SHIPPED
	if _, err := svc.AdminUpdate(ord.ID, "SHIPPED", "", ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("PENDING->SHIPPED should be rejected, got %v", err)
	}

	for _, next := range []string{"PAID", "PREPARING", "SHIPPED"} {
		if _, err := svc.AdminUpdate(ord.ID, next, "", ""); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}

	updated, err := svc.AdminUpdate(ord.ID, "", "CJ Logistics", "1234567890")
	if err != nil {
		t.Fatalf("metadata-only update: %v", err)
	}
	if updated.Status != StatusShipped {
		t.Errorf("metadata update changed status: %s", updated.Status)
	}
	if updated.Carrier != "CJ Logistics" || updated.TrackingNo != "1234567890" {
		t.Errorf("tracking metadata not stored: %+v", updated)
	}

	if _, err := svc.AdminUpdate(ord.ID, "CANCELLED", "", ""); err != nil {
		t.Fatalf("SHIPPED->CANCELLED: %v", err)
	}
	if _, err := svc.AdminUpdate(ord.ID, "PAID", "", ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("transition out of CANCELLED should be rejected, got %v", err)
	}
}

func TestStatus_Machine(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPaid, StatusPreparing, true},
		{StatusPreparing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusDelivered, StatusCompleted, true},
		{StatusDelivered, StatusCancelled, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusPaid, StatusPaid, true},
		{StatusCompleted, StatusCompleted, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}
