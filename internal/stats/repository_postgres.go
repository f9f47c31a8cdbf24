package stats

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Repository interface {
	Dashboard() (Dashboard, error)
}

// paidStatuses are the order states whose totals count as revenue.
var paidStatuses = []string{"PAID", "PREPARING", "SHIPPED", "DELIVERED", "COMPLETED"}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Dashboard() (Dashboard, error) {
	var d Dashboard

	err := r.db.QueryRow(`
		SELECT
			COALESCE(SUM(total) FILTER (WHERE status = ANY($1)), 0),
			COUNT(*)
		FROM orders`, pq.Array(paidStatuses)).Scan(&d.TotalRevenue, &d.TotalOrders)
	if err != nil {
		return Dashboard{}, err
	}

	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&d.TotalUsers); err != nil {
		return Dashboard{}, err
	}
	err = r.db.QueryRow(`SELECT COUNT(*) FROM products WHERE NOT is_deleted`).Scan(&d.ProductCount)
	if err != nil {
		return Dashboard{}, err
	}

	daily, err := r.daily()
	if err != nil {
		return Dashboard{}, err
	}
	d.Daily = daily
	return d, nil
}

// daily buckets the trailing seven days of order activity. Days with no
// orders still appear, zeroed, so charts get a fixed-width series.
func (r *PostgresRepository) daily() ([]DayStats, error) {
	rows, err := r.db.Query(`
		SELECT
			d.day,
			COUNT(o.order_id),
			COUNT(o.order_id) FILTER (WHERE o.status = ANY($1)),
			COUNT(o.order_id) FILTER (WHERE o.status = 'CANCELLED')
		FROM generate_series(
			date_trunc('day', now()) - interval '6 days',
			date_trunc('day', now()),
			interval '1 day') AS d(day)
		LEFT JOIN orders o ON date_trunc('day', o.created_at) = d.day
		GROUP BY d.day
		ORDER BY d.day`, pq.Array(paidStatuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DayStats, 0, 7)
	for rows.Next() {
		var ds DayStats
		var day time.Time
		if err := rows.Scan(&day, &ds.Orders, &ds.Payments, &ds.Refunds); err != nil {
			return nil, err
		}
		ds.Date = day
		out = append(out, ds)
	}
	return out, rows.Err()
}
