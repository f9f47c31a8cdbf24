package address

import "database/sql"

type Repository interface {
	ListByUser(userID int) ([]Address, error)
	Create(a Address) (Address, error)
	Update(a Address) (Address, error)
	Delete(userID, id int) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const addressColumns = `address_id, user_id, recipient, COALESCE(phone, ''), address,
	is_default, created_at, updated_at`

func scanAddress(row interface{ Scan(...any) error }) (Address, error) {
	var a Address
	err := row.Scan(&a.ID, &a.UserID, &a.Recipient, &a.Phone, &a.Address,
		&a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(`SELECT `+addressColumns+` FROM addresses
		WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Create inserts the address, demoting any existing default first when
// the new one is marked default. At most one default per user.
func (r *PostgresRepository) Create(a Address) (Address, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Address{}, err
	}
	defer tx.Rollback()

	if a.IsDefault {
		if _, err := tx.Exec(`UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, a.UserID); err != nil {
			return Address{}, err
		}
	}

	row := tx.QueryRow(`
		INSERT INTO addresses (user_id, recipient, phone, address, is_default)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING `+addressColumns,
		a.UserID, a.Recipient, a.Phone, a.Address, a.IsDefault)
	created, err := scanAddress(row)
	if err != nil {
		return Address{}, err
	}
	return created, tx.Commit()
}

func (r *PostgresRepository) Update(a Address) (Address, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Address{}, err
	}
	defer tx.Rollback()

	if a.IsDefault {
		_, err := tx.Exec(`UPDATE addresses SET is_default = FALSE
			WHERE user_id = $1 AND address_id <> $2`, a.UserID, a.ID)
		if err != nil {
			return Address{}, err
		}
	}

	row := tx.QueryRow(`
		UPDATE addresses
		SET recipient = $1, phone = NULLIF($2, ''), address = $3, is_default = $4, updated_at = now()
		WHERE address_id = $5 AND user_id = $6
		RETURNING `+addressColumns,
		a.Recipient, a.Phone, a.Address, a.IsDefault, a.ID, a.UserID)
	updated, err := scanAddress(row)
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, err
	}
	return updated, tx.Commit()
}

func (r *PostgresRepository) Delete(userID, id int) error {
	res, err := r.db.Exec(`DELETE FROM addresses WHERE address_id = $1 AND user_id = $2`, id, userID)
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
