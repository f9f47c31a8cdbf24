package order

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusPreparing Status = "PREPARING"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusCompleted, StatusCancelled},
}

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to
// next. Same-status updates are allowed so admin edits to carrier or
// tracking info need not change status.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return !s.IsTerminal()
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidStatus reports whether raw names a known status.
func ValidStatus(raw string) bool {
	switch Status(raw) {
	case StatusPending, StatusPaid, StatusPreparing, StatusShipped,
		StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ShippingInfo is the recipient/payment snapshot captured at order
// time. All four fields are required.
type ShippingInfo struct {
	RecipientName   string `json:"name"`
	RecipientPhone  string `json:"phone"`
	ShippingAddress string `json:"address"`
	DepositorName   string `json:"depositorName"`
}

func (s ShippingInfo) Validate() error {
	switch {
	case s.RecipientName == "":
		return &ValidationError{Field: "name"}
	case s.RecipientPhone == "":
		return &ValidationError{Field: "phone"}
	case s.ShippingAddress == "":
		return &ValidationError{Field: "address"}
	case s.DepositorName == "":
		return &ValidationError{Field: "depositorName"}
	}
	return nil
}

// OrderItem is an immutable per-line snapshot. UnitPrice is the product
// price at order time and is never recomputed from the catalog.
type OrderItem struct {
	ID          int    `json:"orderItemId"`
	ProductID   int    `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int    `json:"unitPrice"`
}

// Order is the permanent record of a purchase. Everything except
// status, carrier and tracking number is fixed at creation time.
type Order struct {
	ID              int         `json:"orderId"`
	OrderNo         string      `json:"orderNo"`
	UserID          int         `json:"userId"`
	Status          Status      `json:"status"`
	Total           int         `json:"total"`
	RecipientName   string      `json:"recipientName"`
	RecipientPhone  string      `json:"recipientPhone"`
	ShippingAddress string      `json:"shippingAddress"`
	DepositorName   string      `json:"depositorName"`
	Carrier         string      `json:"carrier,omitempty"`
	TrackingNo      string      `json:"trackingNo,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// ItemsTotal sums the line subtotals. Always equals Total for a
// committed order.
func (o Order) ItemsTotal() int {
	sum := 0
	for _, item := range o.Items {
		sum += item.UnitPrice * item.Quantity
	}
	return sum
}
