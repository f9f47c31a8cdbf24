package catalog

import (
	"errors"
	"time"
)

// Product lifecycle flags. HIDDEN and soft-deleted products never show
// up in storefront listings.
const (
	StatusOnSale  = "ON_SALE"
	StatusSoldOut = "SOLD_OUT"
	StatusHidden  = "HIDDEN"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID          int       `json:"productId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int       `json:"price"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CategoryID  *int      `json:"categoryId,omitempty"`
	IsDeleted   bool      `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Visible reports whether the product may appear on the storefront.
func (p Product) Visible() bool {
	return !p.IsDeleted && p.Status != StatusHidden
}
