package stats

import "time"

// Dashboard is the admin landing-page summary.
type Dashboard struct {
	TotalRevenue int        `json:"totalRevenue"`
	TotalOrders  int        `json:"totalOrders"`
	TotalUsers   int        `json:"totalUsers"`
	ProductCount int        `json:"productCount"`
	Daily        []DayStats `json:"daily"`
}

// DayStats is one bucket of the trailing seven days.
type DayStats struct {
	Date     time.Time `json:"date"`
	Orders   int       `json:"orders"`
	Payments int       `json:"payments"`
	Refunds  int       `json:"refunds"`
}
