package review

import "strings"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(userID, productID, rating int, content string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, ErrBadRating
	}

	bought, err := s.repo.HasPurchased(userID, productID)
	if err != nil {
		return Review{}, err
	}
	if !bought {
		return Review{}, ErrNotPurchaser
	}

	return s.repo.Create(Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Content:   strings.TrimSpace(content),
	})
}

func (s *Service) ListByProduct(productID int) ([]Review, error) {
	return s.repo.ListByProduct(productID)
}

func (s *Service) AdminList(page, limit int) ([]Review, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.List((page-1)*limit, limit)
}

func (s *Service) AdminDelete(id int) error {
	return s.repo.Delete(id)
}
