package inquiry

import "database/sql"

type Repository interface {
	Create(q Inquiry) (Inquiry, error)
	GetByID(id int) (Inquiry, error)
	ListByUser(userID int) ([]Inquiry, error)
	List(status string, offset, limit int) ([]Inquiry, int, error)
	Answer(id int, answer string) (Inquiry, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const inquiryColumns = `i.inquiry_id, i.user_id, COALESCE(i.product_id, 0), i.title, i.content,
	i.status, COALESCE(i.answer, ''), i.created_at, i.updated_at`

func scanInquiry(row interface{ Scan(...any) error }) (Inquiry, error) {
	var q Inquiry
	err := row.Scan(&q.ID, &q.UserID, &q.ProductID, &q.Title, &q.Content,
		&q.Status, &q.Answer, &q.CreatedAt, &q.UpdatedAt)
	return q, err
}

func (r *PostgresRepository) Create(q Inquiry) (Inquiry, error) {
	row := r.db.QueryRow(`
		INSERT INTO inquiries (user_id, product_id, title, content)
		VALUES ($1, NULLIF($2, 0), $3, $4)
		RETURNING inquiry_id, status, created_at, updated_at`,
		q.UserID, q.ProductID, q.Title, q.Content)
	if err := row.Scan(&q.ID, &q.Status, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return Inquiry{}, err
	}
	return q, nil
}

func (r *PostgresRepository) GetByID(id int) (Inquiry, error) {
	row := r.db.QueryRow(`SELECT `+inquiryColumns+` FROM inquiries i WHERE i.inquiry_id = $1`, id)
	q, err := scanInquiry(row)
	if err == sql.ErrNoRows {
		return Inquiry{}, ErrNotFound
	}
	if err != nil {
		return Inquiry{}, err
	}
	return q, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Inquiry, error) {
	rows, err := r.db.Query(`SELECT `+inquiryColumns+` FROM inquiries i
		WHERE i.user_id = $1 ORDER BY i.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Inquiry
	for rows.Next() {
		q, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// List returns a page of inquiries plus the unpaged total. An empty
// status matches everything.
func (r *PostgresRepository) List(status string, offset, limit int) ([]Inquiry, int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM inquiries
		WHERE ($1 = '' OR status = $1)`, status).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(`
		SELECT `+inquiryColumns+`, u.name
		FROM inquiries i
		JOIN users u ON u.user_id = i.user_id
		WHERE ($1 = '' OR i.status = $1)
		ORDER BY i.created_at DESC
		OFFSET $2 LIMIT $3`, status, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Inquiry
	for rows.Next() {
		var q Inquiry
		err := rows.Scan(&q.ID, &q.UserID, &q.ProductID, &q.Title, &q.Content,
			&q.Status, &q.Answer, &q.CreatedAt, &q.UpdatedAt, &q.UserName)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, q)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) Answer(id int, answer string) (Inquiry, error) {
	row := r.db.QueryRow(`
		UPDATE inquiries
		SET answer = $1, status = $2, updated_at = now()
		WHERE inquiry_id = $3
		RETURNING inquiry_id, user_id, COALESCE(product_id, 0), title, content,
			status, COALESCE(answer, ''), created_at, updated_at`,
		answer, StatusAnswered, id)
	q, err := scanInquiry(row)
	if err == sql.ErrNoRows {
		return Inquiry{}, ErrNotFound
	}
	if err != nil {
		return Inquiry{}, err
	}
	return q, nil
}
