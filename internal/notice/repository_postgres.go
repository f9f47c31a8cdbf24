package notice

import "database/sql"

type Repository interface {
	List() ([]Notice, error)
	GetByID(id int) (Notice, error)
	Create(n Notice) (Notice, error)
	Update(n Notice) (Notice, error)
	Delete(id int) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const noticeColumns = `notice_id, title, content, is_important, created_at, updated_at`

func scanNotice(row interface{ Scan(...any) error }) (Notice, error) {
	var n Notice
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.IsImportant, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (r *PostgresRepository) List() ([]Notice, error) {
	// important notices surface first, then newest
	rows, err := r.db.Query(`SELECT ` + noticeColumns + ` FROM notices
		ORDER BY is_important DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Notice, error) {
	row := r.db.QueryRow(`SELECT `+noticeColumns+` FROM notices WHERE notice_id = $1`, id)
	n, err := scanNotice(row)
	if err == sql.ErrNoRows {
		return Notice{}, ErrNotFound
	}
	if err != nil {
		return Notice{}, err
	}
	return n, nil
}

func (r *PostgresRepository) Create(n Notice) (Notice, error) {
	row := r.db.QueryRow(`
		INSERT INTO notices (title, content, is_important)
		VALUES ($1, $2, $3)
		RETURNING `+noticeColumns, n.Title, n.Content, n.IsImportant)
	return scanNotice(row)
}

func (r *PostgresRepository) Update(n Notice) (Notice, error) {
	row := r.db.QueryRow(`
		UPDATE notices
		SET title = $1, content = $2, is_important = $3, updated_at = now()
		WHERE notice_id = $4
		RETURNING `+noticeColumns, n.Title, n.Content, n.IsImportant, n.ID)
	updated, err := scanNotice(row)
	if err == sql.ErrNoRows {
		return Notice{}, ErrNotFound
	}
	if err != nil {
		return Notice{}, err
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM notices WHERE notice_id = $1`, id)
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
