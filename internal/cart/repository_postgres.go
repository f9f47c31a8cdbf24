package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const getItemsQuery = `
        SELECT ci.item_id, p.product_id, p.name, COALESCE(p.description, ''), p.price, p.stock,
               p.status, COALESCE(p.image_url, ''), p.category_id, p.is_deleted, p.created_at, p.updated_at,
               ci.quantity
        FROM cart_items ci
        JOIN carts c ON c.cart_id = ci.cart_id
        JOIN products p ON p.product_id = ci.product_id
        WHERE c.user_id = $1
        ORDER BY ci.item_id
    `

func (r *PostgresRepository) AddItem(userID, productID, qty int) ([]CartItem, error) {
	// lazily create the cart row on first add
	var cartID int
	err := r.db.QueryRow(`INSERT INTO carts (user_id) VALUES ($1)
        ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
        RETURNING cart_id`, userID).Scan(&cartID)
	if err != nil {
		return nil, err
	}

	// duplicate adds merge into the existing line
	_, err = r.db.Exec(`INSERT INTO cart_items (cart_id, product_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (cart_id, product_id) DO UPDATE
        SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartID, productID, qty)
	if err != nil {
		return nil, err
	}

	return r.GetItems(userID)
}

func (r *PostgresRepository) GetItems(userID int) ([]CartItem, error) {
	rows, err := r.db.Query(getItemsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CartItem, 0)
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(&item.ItemID, &item.Product.ID, &item.Product.Name, &item.Product.Description,
			&item.Product.Price, &item.Product.Stock, &item.Product.Status, &item.Product.ImageURL,
			&item.Product.CategoryID, &item.Product.IsDeleted, &item.Product.CreatedAt, &item.Product.UpdatedAt,
			&item.Quantity); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateItem(userID, itemID, qty int) ([]CartItem, error) {
	var res sql.Result
	var err error
	if qty < 1 {
		res, err = r.db.Exec(`DELETE FROM cart_items ci USING carts c
            WHERE ci.cart_id = c.cart_id AND c.user_id = $1 AND ci.item_id = $2`, userID, itemID)
	} else {
		res, err = r.db.Exec(`UPDATE cart_items ci SET quantity = $3 FROM carts c
            WHERE ci.cart_id = c.cart_id AND c.user_id = $1 AND ci.item_id = $2`, userID, itemID, qty)
	}
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrItemNotFound
	}
	return r.GetItems(userID)
}

func (r *PostgresRepository) RemoveItem(userID, itemID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items ci USING carts c
        WHERE ci.cart_id = c.cart_id AND c.user_id = $1 AND ci.item_id = $2`, userID, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items ci USING carts c
        WHERE ci.cart_id = c.cart_id AND c.user_id = $1`, userID)
	return err
}
