package category

import "database/sql"

type Repository interface {
	List() ([]Category, error)
	GetByID(id int) (Category, error)
	Create(c Category) (Category, error)
	Update(c Category) (Category, error)
	Reorder(ids []int) error
	Delete(id int) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(`SELECT category_id, name, ord FROM categories ORDER BY ord, category_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Ord); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	var c Category
	err := r.db.QueryRow(`SELECT category_id, name, ord FROM categories WHERE category_id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Ord)
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(c Category) (Category, error) {
	// new categories append to the end of the ordering
	err := r.db.QueryRow(`
		INSERT INTO categories (name, ord)
		VALUES ($1, COALESCE((SELECT MAX(ord) FROM categories), 0) + 1)
		RETURNING category_id, ord`, c.Name).
		Scan(&c.ID, &c.Ord)
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(c Category) (Category, error) {
	res, err := r.db.Exec(`UPDATE categories SET name = $1 WHERE category_id = $2`, c.Name, c.ID)
	if err != nil {
		return Category{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Category{}, err
	}
	if n == 0 {
		return Category{}, ErrNotFound
	}
	return r.GetByID(c.ID)
}

func (r *PostgresRepository) Reorder(ids []int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, id := range ids {
		if _, err := tx.Exec(`UPDATE categories SET ord = $1 WHERE category_id = $2`, i+1, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE category_id = $1`, id)
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
