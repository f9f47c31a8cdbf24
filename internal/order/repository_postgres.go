package order

import (
	"database/sql"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `order_id, order_no, user_id, status, total, recipient_name, recipient_phone,
        shipping_address, depositor_name, COALESCE(carrier, ''), COALESCE(tracking_no, ''), created_at, updated_at`

// cart lines joined to their product rows, locking the products so no
// concurrent placement can decrement the same stock until we commit
const lockCartLinesQuery = `
        SELECT ci.product_id, ci.quantity, p.name, p.price, p.stock
        FROM cart_items ci
        JOIN carts c ON c.cart_id = ci.cart_id
        JOIN products p ON p.product_id = ci.product_id
        WHERE c.user_id = $1
        ORDER BY ci.product_id
        FOR UPDATE OF p
    `

type cartLine struct {
	productID int
	quantity  int
	name      string
	price     int
	stock     int
}

// PlaceOrder runs the whole commit protocol in one transaction: lock
// the cart's product rows, re-check stock, insert the order with the
// total computed from the locked read, snapshot each line, decrement
// stock with a guarded update, and clear the cart. Any failure rolls
// everything back.
func (r *PostgresRepository) PlaceOrder(userID int, info ShippingInfo) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	rows, err := tx.Query(lockCartLinesQuery, userID)
	if err != nil {
		return Order{}, err
	}
	lines := make([]cartLine, 0)
	for rows.Next() {
		var line cartLine
		if err := rows.Scan(&line.productID, &line.quantity, &line.name, &line.price, &line.stock); err != nil {
			rows.Close()
			return Order{}, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return Order{}, err
	}
	rows.Close()

	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	// commit-time re-check under the row locks
	total := 0
	for _, line := range lines {
		if line.stock < line.quantity {
			return Order{}, &InsufficientStockError{ProductID: line.productID, ProductName: line.name}
		}
		total += line.price * line.quantity
	}

	ord := Order{
		OrderNo:         uuid.NewString(),
		UserID:          userID,
		Status:          StatusPending,
		Total:           total,
		RecipientName:   info.RecipientName,
		RecipientPhone:  info.RecipientPhone,
		ShippingAddress: info.ShippingAddress,
		DepositorName:   info.DepositorName,
	}
	err = tx.QueryRow(`INSERT INTO orders (order_no, user_id, status, total, recipient_name, recipient_phone, shipping_address, depositor_name)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING order_id, created_at, updated_at`,
		ord.OrderNo, ord.UserID, ord.Status, ord.Total,
		ord.RecipientName, ord.RecipientPhone, ord.ShippingAddress, ord.DepositorName).Scan(
		&ord.ID, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return Order{}, err
	}

	for _, line := range lines {
		// snapshot uses the same read that produced the total, so the
		// two can never disagree
		var itemID int
		err = tx.QueryRow(`INSERT INTO order_items (order_id, product_id, quantity, unit_price)
            VALUES ($1, $2, $3, $4) RETURNING order_item_id`,
			ord.ID, line.productID, line.quantity, line.price).Scan(&itemID)
		if err != nil {
			return Order{}, err
		}
		ord.Items = append(ord.Items, OrderItem{
			ID:          itemID,
			ProductID:   line.productID,
			ProductName: line.name,
			Quantity:    line.quantity,
			UnitPrice:   line.price,
		})

		// guarded decrement: zero rows affected means a concurrent
		// writer got the stock first, so abort the whole unit
		res, err := tx.Exec(`UPDATE products SET stock = stock - $1, updated_at = now()
            WHERE product_id = $2 AND stock >= $1`, line.quantity, line.productID)
		if err != nil {
			return Order{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return Order{}, err
		}
		if n == 0 {
			return Order{}, &InsufficientStockError{ProductID: line.productID, ProductName: line.name}
		}
	}

	if _, err := tx.Exec(`DELETE FROM cart_items ci USING carts c
        WHERE ci.cart_id = c.cart_id AND c.user_id = $1`, userID); err != nil {
		return Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(orderID int) (Order, error) {
	ord, err := r.scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID))
	if err != nil {
		return Order{}, err
	}

	rows, err := r.db.Query(`SELECT oi.order_item_id, oi.product_id, p.name, oi.quantity, oi.unit_price
        FROM order_items oi
        JOIN products p ON p.product_id = oi.product_id
        WHERE oi.order_id = $1
        ORDER BY oi.order_item_id`, orderID)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return Order{}, err
		}
		ord.Items = append(ord.Items, item)
	}
	return ord, rows.Err()
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders
        WHERE user_id = $1 ORDER BY order_id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectOrders(rows)
}

func (r *PostgresRepository) List(status Status, offset, limit int) ([]Order, int, error) {
	var total int
	if status != "" {
		if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&total); err != nil {
			return nil, 0, err
		}
	} else {
		if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	var (
		rows *sql.Rows
		err  error
	)
	if status != "" {
		rows, err = r.db.Query(`SELECT `+orderColumns+` FROM orders
            WHERE status = $1 ORDER BY order_id DESC OFFSET $2 LIMIT $3`, status, offset, limit)
	} else {
		rows, err = r.db.Query(`SELECT `+orderColumns+` FROM orders
            ORDER BY order_id DESC OFFSET $1 LIMIT $2`, offset, limit)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := r.collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *PostgresRepository) TransitionStatus(orderID int, from, to Status) (Order, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = $1, updated_at = now()
        WHERE order_id = $2 AND status = $3`, to, orderID, from)
	if err != nil {
		return Order{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if n == 0 {
		// either the order is gone or another transition won the race
		if _, err := r.GetByID(orderID); err != nil {
			return Order{}, err
		}
		return Order{}, ErrInvalidTransition
	}
	return r.GetByID(orderID)
}

func (r *PostgresRepository) UpdateShipping(orderID int, status Status, carrier, trackingNo string) (Order, error) {
	res, err := r.db.Exec(`UPDATE orders
        SET status = $1, carrier = NULLIF($2, ''), tracking_no = NULLIF($3, ''), updated_at = now()
        WHERE order_id = $4`, status, carrier, trackingNo, orderID)
	if err != nil {
		return Order{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if n == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(orderID)
}

func (r *PostgresRepository) scanOrder(row *sql.Row) (Order, error) {
	var ord Order
	err := row.Scan(&ord.ID, &ord.OrderNo, &ord.UserID, &ord.Status, &ord.Total,
		&ord.RecipientName, &ord.RecipientPhone, &ord.ShippingAddress, &ord.DepositorName,
		&ord.Carrier, &ord.TrackingNo, &ord.CreatedAt, &ord.UpdatedAt)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) collectOrders(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		var ord Order
		if err := rows.Scan(&ord.ID, &ord.OrderNo, &ord.UserID, &ord.Status, &ord.Total,
			&ord.RecipientName, &ord.RecipientPhone, &ord.ShippingAddress, &ord.DepositorName,
			&ord.Carrier, &ord.TrackingNo, &ord.CreatedAt, &ord.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}
