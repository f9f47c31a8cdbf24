package user

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `user_id, email, password_hash, name, COALESCE(phone, ''), role, created_at, updated_at`

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(`INSERT INTO users (email, password_hash, name, phone, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+userColumns,
		u.Email, u.PasswordHash, u.Name, u.Phone, u.Role).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.scanOne(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id))
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.scanOne(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	err := r.db.QueryRow(`UPDATE users
        SET name = COALESCE(NULLIF($1, ''), name),
            phone = COALESCE(NULLIF($2, ''), phone),
            password_hash = COALESCE(NULLIF($3, ''), password_hash),
            updated_at = now()
        WHERE user_id = $4
        RETURNING `+userColumns,
		u.Name, u.Phone, u.PasswordHash, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) AdminUpdate(id int, u User) (User, error) {
	err := r.db.QueryRow(`UPDATE users
        SET name = COALESCE(NULLIF($1, ''), name),
            phone = COALESCE(NULLIF($2, ''), phone),
            role = COALESCE(NULLIF($3, ''), role),
            updated_at = now()
        WHERE user_id = $4
        RETURNING `+userColumns,
		u.Name, u.Phone, u.Role, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) History(userID int) ([]OrderSummary, []ReviewSummary, []InquirySummary, error) {
	orders, err := r.orderHistory(userID)
	if err != nil {
		return nil, nil, nil, err
	}

	reviews := make([]ReviewSummary, 0)
	rows, err := r.db.Query(`SELECT review_id, product_id, rating, COALESCE(content, ''), created_at
        FROM reviews WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rv ReviewSummary
		if err := rows.Scan(&rv.ReviewID, &rv.ProductID, &rv.Rating, &rv.Content, &rv.CreatedAt); err != nil {
			return nil, nil, nil, err
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, err
	}

	inquiries := make([]InquirySummary, 0)
	qrows, err := r.db.Query(`SELECT inquiry_id, title, status, created_at
        FROM inquiries WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	defer qrows.Close()
	for qrows.Next() {
		var q InquirySummary
		if err := qrows.Scan(&q.InquiryID, &q.Title, &q.Status, &q.CreatedAt); err != nil {
			return nil, nil, nil, err
		}
		inquiries = append(inquiries, q)
	}
	if err := qrows.Err(); err != nil {
		return nil, nil, nil, err
	}

	return orders, reviews, inquiries, nil
}

// orderHistory loads the user's orders newest-first and attaches their
// lines with one batched query over the collected order ids.
func (r *PostgresRepository) orderHistory(userID int) ([]OrderSummary, error) {
	orders := make([]OrderSummary, 0)
	rows, err := r.db.Query(`SELECT order_id, order_no, status, total, created_at
        FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[int]int)
	ids := make([]int, 0)
	for rows.Next() {
		var o OrderSummary
		if err := rows.Scan(&o.OrderID, &o.OrderNo, &o.Status, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Items = make([]OrderLine, 0)
		index[o.OrderID] = len(orders)
		ids = append(ids, o.OrderID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	irows, err := r.db.Query(`SELECT oi.order_id, oi.product_id, p.name, oi.quantity, oi.unit_price
        FROM order_items oi
        JOIN products p ON p.product_id = oi.product_id
        WHERE oi.order_id = ANY($1::int[])
        ORDER BY oi.order_item_id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer irows.Close()
	for irows.Next() {
		var orderID int
		var line OrderLine
		if err := irows.Scan(&orderID, &line.ProductID, &line.ProductName, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, line)
		}
	}
	if err := irows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) scanOne(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
