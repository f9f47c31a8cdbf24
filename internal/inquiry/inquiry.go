package inquiry

import (
	"errors"
	"time"
)

const (
	StatusPending  = "PENDING"
	StatusAnswered = "ANSWERED"
)

var (
	ErrNotFound      = errors.New("inquiry not found")
	ErrMissingFields = errors.New("title and content are required")
	ErrMissingAnswer = errors.New("answer is required")
)

type Inquiry struct {
	ID        int       `json:"inquiryId"`
	UserID    int       `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	ProductID int       `json:"productId,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	Answer    string    `json:"answer,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
