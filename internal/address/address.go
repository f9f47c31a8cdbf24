package address

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("address not found")
	ErrMissingFields = errors.New("recipient and address are required")
)

type Address struct {
	ID        int       `json:"addressId"`
	UserID    int       `json:"-"`
	Recipient string    `json:"recipient"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
