package user

import "sync"

// Repository defines persistence operations for users.
type Repository interface {
	Create(u User) (User, error)
	GetByID(id int) (User, error)
	GetByEmail(email string) (User, error)
	Update(id int, u User) (User, error)
	// AdminUpdate also changes the role; blank fields keep their
	// current values.
	AdminUpdate(id int, u User) (User, error)
	List() ([]User, error)
	History(userID int) ([]OrderSummary, []ReviewSummary, []InquirySummary, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int
	users  []User
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	for _, u := range seed {
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		r.users = append(r.users, u)
	}
	return r
}

func (r *InMemoryRepository) Create(u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return User{}, ErrEmailExists
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryRepository) GetByID(id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Update(id int, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.users {
		if existing.ID == id {
			if u.Name != "" {
				existing.Name = u.Name
			}
			if u.Phone != "" {
				existing.Phone = u.Phone
			}
			if u.PasswordHash != "" {
				existing.PasswordHash = u.PasswordHash
			}
			r.users[i] = existing
			return existing, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) AdminUpdate(id int, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.users {
		if existing.ID == id {
			if u.Name != "" {
				existing.Name = u.Name
			}
			if u.Phone != "" {
				existing.Phone = u.Phone
			}
			if u.Role != "" {
				existing.Role = u.Role
			}
			r.users[i] = existing
			return existing, nil
		}
	}
	return User{}, ErrNotFound
}

// History on the in-memory repository is always empty; activity data
// lives with the orders/reviews/inquiries tables, not here.
func (r *InMemoryRepository) History(userID int) ([]OrderSummary, []ReviewSummary, []InquirySummary, error) {
	return []OrderSummary{}, []ReviewSummary{}, []InquirySummary{}, nil
}

func (r *InMemoryRepository) List() ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out, nil
}
