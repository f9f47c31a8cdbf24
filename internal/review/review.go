package review

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("review not found")
	ErrNotPurchaser = errors.New("only buyers of the product can review it")
	ErrBadRating    = errors.New("rating must be between 1 and 5")
)

type Review struct {
	ID        int       `json:"reviewId"`
	UserID    int       `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	ProductID int       `json:"productId"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
