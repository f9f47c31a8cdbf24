package order

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dalkomstore/shop-backend/internal/cart"
	"github.com/dalkomstore/shop-backend/internal/catalog"
)

// Repository defines persistence for orders. PlaceOrder is the atomic
// unit of the whole system: order + item snapshots + stock decrement +
// cart clear either all commit or none do. TransitionStatus only
// succeeds when the stored status still equals from, so concurrent
// transitions cannot both apply.
type Repository interface {
	PlaceOrder(userID int, info ShippingInfo) (Order, error)
	GetByID(orderID int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	List(status Status, offset, limit int) ([]Order, int, error)
	TransitionStatus(orderID int, from, to Status) (Order, error)
	UpdateShipping(orderID int, status Status, carrier, trackingNo string) (Order, error)
}

// InMemoryRepository implements the same commit discipline as the
// Postgres repository for tests and local scenarios: the placement
// mutex plays the role of the row locks, so once a placement starts
// its stock re-check no other placement can interleave.
type InMemoryRepository struct {
	mu       sync.Mutex
	nextID   int
	orders   map[int]Order
	products catalog.Repository
	carts    cart.Repository
}

func NewInMemoryRepository(products catalog.Repository, carts cart.Repository) *InMemoryRepository {
	return &InMemoryRepository{
		nextID:   1,
		orders:   make(map[int]Order),
		products: products,
		carts:    carts,
	}
}

func (r *InMemoryRepository) PlaceOrder(userID int, info ShippingInfo) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines, err := r.carts.GetItems(userID)
	if err != nil {
		return Order{}, err
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	// commit-time re-check against current stock; nothing is mutated
	// until every line passes, so a failure leaves no partial state
	total := 0
	products := make([]catalog.Product, len(lines))
	for i, line := range lines {
		p, err := r.products.GetByID(line.Product.ID)
		if err != nil {
			return Order{}, err
		}
		if p.Stock < line.Quantity {
			return Order{}, &InsufficientStockError{ProductID: p.ID, ProductName: p.Name}
		}
		products[i] = p
		total += p.Price * line.Quantity
	}

	now := time.Now().UTC()
	ord := Order{
		ID:              r.nextID,
		OrderNo:         uuid.NewString(),
		UserID:          userID,
		Status:          StatusPending,
		Total:           total,
		RecipientName:   info.RecipientName,
		RecipientPhone:  info.RecipientPhone,
		ShippingAddress: info.ShippingAddress,
		DepositorName:   info.DepositorName,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i, line := range lines {
		p := products[i]
		p.Stock -= line.Quantity
		if _, err := r.products.Update(p.ID, p); err != nil {
			return Order{}, err
		}
		ord.Items = append(ord.Items, OrderItem{
			ID:          i + 1,
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
		})
	}
	if err := r.carts.Clear(userID); err != nil {
		return Order{}, err
	}

	r.nextID++
	r.orders[ord.ID] = ord
	return ord, nil
}

func (r *InMemoryRepository) GetByID(orderID int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.orders[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UserID == userID {
			out = append(out, ord)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) List(status Status, offset, limit int) ([]Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]Order, 0, len(r.orders))
	for _, ord := range r.orders {
		if status != "" && ord.Status != status {
			continue
		}
		all = append(all, ord)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := len(all)
	if offset >= total {
		return []Order{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *InMemoryRepository) TransitionStatus(orderID int, from, to Status) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.orders[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	if ord.Status != from {
		return Order{}, ErrInvalidTransition
	}
	ord.Status = to
	ord.UpdatedAt = time.Now().UTC()
	r.orders[orderID] = ord
	return ord, nil
}

func (r *InMemoryRepository) UpdateShipping(orderID int, status Status, carrier, trackingNo string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.orders[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	ord.Status = status
	ord.Carrier = carrier
	ord.TrackingNo = trackingNo
	ord.UpdatedAt = time.Now().UTC()
	r.orders[orderID] = ord
	return ord, nil
}
