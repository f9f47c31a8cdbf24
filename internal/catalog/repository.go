package catalog

import (
	"sort"
	"sync"
)

// Repository defines persistence operations for products. GetByID and
// ListByIDs return products regardless of visibility; the service
// filters for storefront reads.
type Repository interface {
	Create(p Product) (Product, error)
	GetByID(id int) (Product, error)
	ListByIDs(ids []int) ([]Product, error)
	List(categoryID int) ([]Product, error)
	Update(id int, p Product) (Product, error)
	SoftDelete(id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	nextID   int
	products map[int]Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1, products: make(map[int]Product, len(seed))}
	for _, p := range seed {
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	if p.Status == "" {
		p.Status = StatusOnSale
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok || p.IsDeleted {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *InMemoryRepository) ListByIDs(ids []int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok && !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) List(categoryID int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		if p.IsDeleted {
			continue
		}
		if categoryID > 0 && (p.CategoryID == nil || *p.CategoryID != categoryID) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[id]
	if !ok || existing.IsDeleted {
		return Product{}, ErrNotFound
	}
	existing.Name = p.Name
	existing.Description = p.Description
	existing.Price = p.Price
	existing.Stock = p.Stock
	existing.Status = p.Status
	existing.ImageURL = p.ImageURL
	existing.CategoryID = p.CategoryID
	r.products[id] = existing
	return existing, nil
}

func (r *InMemoryRepository) SoftDelete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[id]
	if !ok || existing.IsDeleted {
		return ErrNotFound
	}
	existing.IsDeleted = true
	r.products[id] = existing
	return nil
}
