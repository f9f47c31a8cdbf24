package order

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/dalkomstore/shop-backend/internal/cart"
	"github.com/dalkomstore/shop-backend/internal/catalog"
)

func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims := jwt.MapClaims{"user_id": id}
				if c.Get("X-Role") != "" {
					claims["role"] = c.Get("X-Role")
				}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	h.RegisterAdminRoutes(app, func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func newHandlerWorld(t *testing.T) (*Handler, *cart.InMemoryRepository) {
	t.Helper()
	products := catalog.NewInMemoryRepository([]catalog.Product{
		{ID: 1, Name: "Lavender candle", Price: 1000, Stock: 10, Status: catalog.StatusOnSale},
	})
	carts := cart.NewInMemoryRepository(products)
	repo := NewInMemoryRepository(products, carts)
	return NewHandler(NewService(repo, cart.NewService(carts), nil)), carts
}

func TestPlaceOrderRoute(t *testing.T) {
	handler, carts := newHandlerWorld(t)
	app := makeApp(handler)

	if _, err := carts.AddItem(42, 1, 2); err != nil {
		t.Fatalf("seeding cart: %v", err)
	}

	// unauthenticated
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated POST, got %d", res.StatusCode)
	}

	// missing depositorName
	body := `{"name":"Kim","phone":"010-1111-2222","address":"Seoul"}`
	req = httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing field, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "MISSING_FIELDS") {
		t.Fatalf("expected MISSING_FIELDS code, got %s", string(b))
	}

	// valid placement
	body = `{"name":"Kim","phone":"010-1111-2222","address":"Seoul","depositorName":"Kim"}`
	req = httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		rb, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201, got %d: %s", res.StatusCode, string(rb))
	}
	var placed struct {
		Success bool `json:"success"`
		Data    struct {
			OrderID int    `json:"orderId"`
			OrderNo string `json:"orderNo"`
		} `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&placed); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !placed.Success || placed.Data.OrderID == 0 {
		t.Fatalf("unexpected response: %+v", placed)
	}

	// repeat on the now-empty cart
	req = httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", res.StatusCode)
	}

	// owner can fetch, stranger cannot
	orderPath := fmt.Sprintf("/api/v1/orders/%d", placed.Data.OrderID)
	req = httptest.NewRequest("GET", orderPath, nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for owner GET, got %d", res.StatusCode)
	}
	req = httptest.NewRequest("GET", orderPath, nil)
	req.Header.Set("X-User-ID", "77")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for stranger GET, got %d", res.StatusCode)
	}

	// pay once, then conflict
	req = httptest.NewRequest("POST", orderPath+"/pay", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for pay, got %d", res.StatusCode)
	}
	req = httptest.NewRequest("POST", orderPath+"/pay", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for double pay, got %d", res.StatusCode)
	}
}

func TestPlaceOrderRoute_InsufficientStock(t *testing.T) {
	handler, carts := newHandlerWorld(t)
	app := makeApp(handler)

	if _, err := carts.AddItem(42, 1, 50); err != nil {
		t.Fatalf("seeding cart: %v", err)
	}

	body := `{"name":"Kim","phone":"010-1111-2222","address":"Seoul","depositorName":"Kim"}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for insufficient stock, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "INSUFFICIENT_STOCK") {
		t.Fatalf("expected INSUFFICIENT_STOCK code, got %s", string(b))
	}
	if !strings.Contains(string(b), "Lavender candle") {
		t.Fatalf("error should name the product, got %s", string(b))
	}
}

func TestAdminOrderRoutes(t *testing.T) {
	handler, carts := newHandlerWorld(t)
	app := makeApp(handler)

	if _, err := carts.AddItem(42, 1, 1); err != nil {
		t.Fatalf("seeding cart: %v", err)
	}
	body := `{"name":"Kim","phone":"010-1111-2222","address":"Seoul","depositorName":"Kim"}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	if res, _ := app.Test(req); res.StatusCode != fiber.StatusCreated {
		t.Fatalf("placement failed: %d", res.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/v1/admin/orders?status=PENDING", nil)
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-Role", "admin")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin list, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"total":1`) {
		t.Fatalf("expected one pending order in meta, got %s", string(b))
	}

	// out-of-range paging is clamped, and the meta reports the values
	// the query actually ran with
	req = httptest.NewRequest("GET", "/api/v1/admin/orders?page=0&limit=0", nil)
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-Role", "admin")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for clamped list, got %d", res.StatusCode)
	}
	var clamped struct {
		Data []Order `json:"data"`
		Meta struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(res.Body).Decode(&clamped); err != nil {
		t.Fatalf("decoding clamped list: %v", err)
	}
	if clamped.Meta.Page != 1 || clamped.Meta.Limit != 20 {
		t.Fatalf("meta should carry clamped paging, got %+v", clamped.Meta)
	}
	if clamped.Meta.TotalPages != 1 || len(clamped.Data) != 1 {
		t.Fatalf("expected the single order on one page, got %+v", clamped.Meta)
	}

	// illegal transition is rejected
	req = httptest.NewRequest("PUT", "/api/v1/admin/orders/1", strings.NewReader(`{"status":"SHIPPED"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-Role", "admin")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for illegal transition, got %d", res.StatusCode)
	}
}
