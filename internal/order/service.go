package order

import (
	"go.uber.org/zap"

	"github.com/dalkomstore/shop-backend/internal/cart"
)

// Service is the order placement engine plus the lifecycle operations
// built on top of the committed orders.
type Service struct {
	repo  Repository
	carts cart.ServiceInterface
	log   *zap.Logger
}

func NewService(repo Repository, carts cart.ServiceInterface, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, carts: carts, log: log}
}

// PlaceOrder validates the preconditions, then hands the atomic commit
// to the repository. The advisory stock check here gives the caller a
// fast failure; the repository re-checks under isolation because stock
// can change between the two.
func (s *Service) PlaceOrder(userID int, info ShippingInfo) (Order, error) {
	if err := info.Validate(); err != nil {
		return Order{}, err
	}

	lines, err := s.carts.GetCart(userID)
	if err != nil {
		return Order{}, err
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}
	for _, line := range lines {
		if line.Product.Stock < line.Quantity {
			return Order{}, &InsufficientStockError{ProductID: line.Product.ID, ProductName: line.Product.Name}
		}
	}

	ord, err := s.repo.PlaceOrder(userID, info)
	if err != nil {
		s.log.Warn("order placement failed",
			zap.Int("user_id", userID),
			zap.Error(err))
		return Order{}, err
	}

	s.log.Info("order placed",
		zap.Int("user_id", userID),
		zap.Int("order_id", ord.ID),
		zap.String("order_no", ord.OrderNo),
		zap.Int("total", ord.Total),
		zap.Int("lines", len(ord.Items)))
	return ord, nil
}

// GetForUser fetches an order only if it belongs to the user.
func (s *Service) GetForUser(userID, orderID int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrNotOwner
	}
	return ord, nil
}

func (s *Service) ListForUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

// Pay simulates the bank-transfer confirmation: it flips the order from
// PENDING to PAID and touches nothing else. The guarded transition in
// the repository makes a double pay fail rather than double apply.
func (s *Service) Pay(userID, orderID int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrNotOwner
	}
	return s.repo.TransitionStatus(orderID, StatusPending, StatusPaid)
}

func (s *Service) AdminGet(orderID int) (Order, error) {
	return s.repo.GetByID(orderID)
}

func (s *Service) AdminList(status string, page, limit int) ([]Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if status != "" && !ValidStatus(status) {
		return nil, 0, ErrInvalidTransition
	}
	return s.repo.List(Status(status), (page-1)*limit, limit)
}

// AdminUpdate applies a status change plus carrier/tracking metadata
// after validating the transition against the state machine.
func (s *Service) AdminUpdate(orderID int, status, carrier, trackingNo string) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}

	next := ord.Status
	if status != "" {
		if !ValidStatus(status) {
			return Order{}, ErrInvalidTransition
		}
		next = Status(status)
		if !ord.Status.CanTransitionTo(next) {
			return Order{}, ErrInvalidTransition
		}
	}

	updated, err := s.repo.UpdateShipping(orderID, next, carrier, trackingNo)
	if err != nil {
		return Order{}, err
	}
	if next != ord.Status {
		s.log.Info("order status updated",
			zap.Int("order_id", orderID),
			zap.String("from", ord.Status.String()),
			zap.String("to", next.String()))
	}
	return updated, nil
}
