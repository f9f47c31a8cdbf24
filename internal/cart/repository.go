package cart

import (
	"sort"
	"sync"

	"github.com/dalkomstore/shop-backend/internal/catalog"
)

// Repository provides access to cart persistence. Carts are created
// lazily on first add; reading a missing cart yields an empty list.
type Repository interface {
	AddItem(userID, productID, qty int) ([]CartItem, error)
	GetItems(userID int) ([]CartItem, error)
	UpdateItem(userID, itemID, qty int) ([]CartItem, error)
	RemoveItem(userID, itemID int) error
	Clear(userID int) error
}

type memItem struct {
	itemID    int
	productID int
	quantity  int
}

// InMemoryRepository is used for tests and local scenarios. Product
// details are resolved through the given catalog repository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	nextItem int
	items    map[int][]memItem // userID -> lines
	products catalog.Repository
}

func NewInMemoryRepository(products catalog.Repository) *InMemoryRepository {
	return &InMemoryRepository{
		nextItem: 1,
		items:    make(map[int][]memItem),
		products: products,
	}
}

func (r *InMemoryRepository) AddItem(userID, productID, qty int) ([]CartItem, error) {
	if _, err := r.products.GetByID(productID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	lines := r.items[userID]
	merged := false
	for i, line := range lines {
		if line.productID == productID {
			lines[i].quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, memItem{itemID: r.nextItem, productID: productID, quantity: qty})
		r.nextItem++
	}
	r.items[userID] = lines
	r.mu.Unlock()

	return r.GetItems(userID)
}

func (r *InMemoryRepository) GetItems(userID int) ([]CartItem, error) {
	r.mu.RLock()
	lines := make([]memItem, len(r.items[userID]))
	copy(lines, r.items[userID])
	r.mu.RUnlock()

	sort.Slice(lines, func(i, j int) bool { return lines[i].itemID < lines[j].itemID })

	// one batched lookup; lines whose product has vanished are dropped
	ids := make([]int, len(lines))
	for i, line := range lines {
		ids[i] = line.productID
	}
	products, err := r.products.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]CartItem, 0, len(lines))
	for _, line := range lines {
		p, ok := byID[line.productID]
		if !ok {
			continue
		}
		out = append(out, CartItem{ItemID: line.itemID, Product: p, Quantity: line.quantity})
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateItem(userID, itemID, qty int) ([]CartItem, error) {
	r.mu.Lock()
	lines := r.items[userID]
	found := false
	for i, line := range lines {
		if line.itemID == itemID {
			found = true
			if qty < 1 {
				lines = append(lines[:i], lines[i+1:]...)
			} else {
				lines[i].quantity = qty
			}
			break
		}
	}
	r.items[userID] = lines
	r.mu.Unlock()

	if !found {
		return nil, ErrItemNotFound
	}
	return r.GetItems(userID)
}

func (r *InMemoryRepository) RemoveItem(userID, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.items[userID]
	for i, line := range lines {
		if line.itemID == itemID {
			r.items[userID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, userID)
	return nil
}
