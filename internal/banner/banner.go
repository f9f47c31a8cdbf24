package banner

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("banner not found")

type Banner struct {
	ID        int       `json:"bannerId"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	Link      string    `json:"link,omitempty"`
	IsActive  bool      `json:"isActive"`
	Ord       int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}
