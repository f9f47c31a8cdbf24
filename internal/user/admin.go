package user

import "time"

// Back-office detail view: the user plus their activity, shaped the
// way the admin screens consume it.

type OrderLine struct {
	ProductID   int    `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int    `json:"unitPrice"`
}

type OrderSummary struct {
	OrderID   int         `json:"orderId"`
	OrderNo   string      `json:"orderNo"`
	Status    string      `json:"status"`
	Total     int         `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
	Items     []OrderLine `json:"items"`
}

type ReviewSummary struct {
	ReviewID  int       `json:"reviewId"`
	ProductID int       `json:"productId"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type InquirySummary struct {
	InquiryID int       `json:"inquiryId"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type AdminUserDetail struct {
	User
	Orders    []OrderSummary   `json:"orders"`
	Reviews   []ReviewSummary  `json:"reviews"`
	Inquiries []InquirySummary `json:"inquiries"`
}
