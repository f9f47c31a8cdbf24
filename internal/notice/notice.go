package notice

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("notice not found")

type Notice struct {
	ID          int       `json:"noticeId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsImportant bool      `json:"isImportant"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
