package catalog

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

const productColumns = `product_id, name, COALESCE(description, ''), price, stock, status, COALESCE(image_url, ''), category_id, is_deleted, created_at, updated_at`

func scanProduct(s interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Status,
		&p.ImageURL, &p.CategoryID, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	if p.Status == "" {
		p.Status = StatusOnSale
	}
	return scanProduct(r.db.QueryRow(`INSERT INTO products (name, description, price, stock, status, image_url, category_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+productColumns,
		p.Name, p.Description, p.Price, p.Stock, p.Status, p.ImageURL, p.CategoryID))
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	return scanProduct(r.db.QueryRow(`SELECT `+productColumns+` FROM products
        WHERE product_id = $1 AND is_deleted = FALSE`, id))
}

func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
        WHERE product_id = ANY($1::int[]) AND is_deleted = FALSE
        ORDER BY array_position($1::int[], product_id)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PostgresRepository) List(categoryID int) ([]Product, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if categoryID > 0 {
		rows, err = r.db.Query(`SELECT `+productColumns+` FROM products
            WHERE is_deleted = FALSE AND category_id = $1
            ORDER BY created_at DESC, product_id DESC`, categoryID)
	} else {
		rows, err = r.db.Query(`SELECT ` + productColumns + ` FROM products
            WHERE is_deleted = FALSE
            ORDER BY created_at DESC, product_id DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	return scanProduct(r.db.QueryRow(`UPDATE products
        SET name = $1, description = $2, price = $3, stock = $4, status = $5,
            image_url = $6, category_id = $7, updated_at = now()
        WHERE product_id = $8 AND is_deleted = FALSE
        RETURNING `+productColumns,
		p.Name, p.Description, p.Price, p.Stock, p.Status, p.ImageURL, p.CategoryID, id))
}

func (r *PostgresRepository) SoftDelete(id int) error {
	res, err := r.db.Exec(`UPDATE products SET is_deleted = TRUE, updated_at = now()
        WHERE product_id = $1 AND is_deleted = FALSE`, id)
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

func collectProducts(rows *sql.Rows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
