package cart

import (
	"errors"

	"github.com/dalkomstore/shop-backend/internal/catalog"
)

var (
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// CartItem is one line of a user's cart, enriched with the current
// product details. Price and stock are the product's live values, not
// a snapshot; snapshots only exist on orders.
type CartItem struct {
	ItemID int `json:"itemId"`
	catalog.Product
	Quantity int `json:"quantity"`
}
