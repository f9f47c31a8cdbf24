package review

import (
	"database/sql"

	"github.com/lib/pq"
)

type Repository interface {
	Create(rv Review) (Review, error)
	ListByProduct(productID int) ([]Review, error)
	List(offset, limit int) ([]Review, int, error)
	Delete(id int) error
	// HasPurchased reports whether the user has an order containing the
	// product in a state that proves the purchase went through.
	HasPurchased(userID, productID int) (bool, error)
}

// purchasedStatuses are the order states that count as a completed
// purchase for review eligibility. PENDING and CANCELLED do not.
var purchasedStatuses = []string{"PAID", "PREPARING", "SHIPPED", "DELIVERED", "COMPLETED"}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(rv Review) (Review, error) {
	row := r.db.QueryRow(`
		INSERT INTO reviews (user_id, product_id, rating, content)
		VALUES ($1, $2, $3, $4)
		RETURNING review_id, created_at`,
		rv.UserID, rv.ProductID, rv.Rating, rv.Content)
	if err := row.Scan(&rv.ID, &rv.CreatedAt); err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepository) ListByProduct(productID int) ([]Review, error) {
	rows, err := r.db.Query(`
		SELECT r.review_id, r.user_id, u.name, r.product_id, r.rating,
			COALESCE(r.content, ''), r.created_at
		FROM reviews r
		JOIN users u ON u.user_id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresRepository) List(offset, limit int) ([]Review, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM reviews`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(`
		SELECT r.review_id, r.user_id, u.name, r.product_id, r.rating,
			COALESCE(r.content, ''), r.created_at
		FROM reviews r
		JOIN users u ON u.user_id = r.user_id
		ORDER BY r.created_at DESC
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collect(rows)
	return out, total, err
}

func collect(rows *sql.Rows) ([]Review, error) {
	var out []Review
	for rows.Next() {
		var rv Review
		err := rows.Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.ProductID,
			&rv.Rating, &rv.Content, &rv.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM reviews WHERE review_id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) HasPurchased(userID, productID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1
			FROM orders o
			JOIN order_items oi ON oi.order_id = o.order_id
			WHERE o.user_id = $1
			  AND oi.product_id = $2
			  AND o.status = ANY($3)
		)`, userID, productID, pq.Array(purchasedStatuses)).Scan(&exists)
	return exists, err
}
