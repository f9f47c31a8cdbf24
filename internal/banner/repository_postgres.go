package banner

import "database/sql"

// Repository provides access to banner rows.
type Repository interface {
	ListActive() ([]Banner, error)
	ListAll() ([]Banner, error)
	Create(b Banner) (Banner, error)
	Update(id int, b Banner) (Banner, error)
	Reorder(order map[int]int) error
	Delete(id int) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bannerColumns = `banner_id, title, image_url, COALESCE(link, ''), is_active, ord, created_at`

func (r *PostgresRepository) ListActive() ([]Banner, error) {
	rows, err := r.db.Query(`SELECT ` + bannerColumns + ` FROM banners
        WHERE is_active = TRUE ORDER BY ord ASC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresRepository) ListAll() ([]Banner, error) {
	rows, err := r.db.Query(`SELECT ` + bannerColumns + ` FROM banners
        ORDER BY ord ASC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresRepository) Create(b Banner) (Banner, error) {
	// new banners append to the end of the display order
	err := r.db.QueryRow(`INSERT INTO banners (title, image_url, link, is_active, ord)
        VALUES ($1, $2, NULLIF($3, ''), $4, (SELECT COALESCE(MAX(ord), 0) + 1 FROM banners))
        RETURNING `+bannerColumns,
		b.Title, b.ImageURL, b.Link, b.IsActive).Scan(
		&b.ID, &b.Title, &b.ImageURL, &b.Link, &b.IsActive, &b.Ord, &b.CreatedAt)
	if err != nil {
		return Banner{}, err
	}
	return b, nil
}

func (r *PostgresRepository) Update(id int, b Banner) (Banner, error) {
	err := r.db.QueryRow(`UPDATE banners
        SET title = $1, image_url = $2, link = NULLIF($3, ''), is_active = $4
        WHERE banner_id = $5
        RETURNING `+bannerColumns,
		b.Title, b.ImageURL, b.Link, b.IsActive, id).Scan(
		&b.ID, &b.Title, &b.ImageURL, &b.Link, &b.IsActive, &b.Ord, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return Banner{}, ErrNotFound
	}
	if err != nil {
		return Banner{}, err
	}
	return b, nil
}

func (r *PostgresRepository) Reorder(order map[int]int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for id, ord := range order {
		if _, err := tx.Exec(`UPDATE banners SET ord = $1 WHERE banner_id = $2`, ord, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM banners WHERE banner_id = $1`, id)
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

func collect(rows *sql.Rows) ([]Banner, error) {
	out := make([]Banner, 0)
	for rows.Next() {
		var b Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.ImageURL, &b.Link, &b.IsActive, &b.Ord, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
