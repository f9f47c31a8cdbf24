package cart

import "github.com/dalkomstore/shop-backend/internal/catalog"

// ServiceInterface is the read contract consumed by order placement.
type ServiceInterface interface {
	GetCart(userID int) ([]CartItem, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddToCart(userID, productID, qty int) ([]CartItem, error) {
	if productID <= 0 {
		return nil, catalog.ErrNotFound
	}
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	return s.repo.AddItem(userID, productID, qty)
}

// GetCart returns the user's cart lines; a user without a cart gets an
// empty list, never an error.
func (s *Service) GetCart(userID int) ([]CartItem, error) {
	return s.repo.GetItems(userID)
}

// UpdateQuantity sets a line's quantity; anything below 1 removes the
// line instead.
func (s *Service) UpdateQuantity(userID, itemID, qty int) ([]CartItem, error) {
	if itemID <= 0 {
		return nil, ErrItemNotFound
	}
	return s.repo.UpdateItem(userID, itemID, qty)
}

func (s *Service) RemoveItem(userID, itemID int) error {
	if itemID <= 0 {
		return ErrItemNotFound
	}
	return s.repo.RemoveItem(userID, itemID)
}

func (s *Service) ClearCart(userID int) error {
	return s.repo.Clear(userID)
}
