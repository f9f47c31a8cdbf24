package banner

import "errors"

var ErrMissingFields = errors.New("title and imageUrl are required")

// Service provides business logic for banners.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) ListActive() ([]Banner, error) {
	return s.repo.ListActive()
}

func (s *Service) ListAll() ([]Banner, error) {
	return s.repo.ListAll()
}

func (s *Service) Create(b Banner) (Banner, error) {
	if b.Title == "" || b.ImageURL == "" {
		return Banner{}, ErrMissingFields
	}
	return s.repo.Create(b)
}

func (s *Service) Update(id int, b Banner) (Banner, error) {
	if b.Title == "" || b.ImageURL == "" {
		return Banner{}, ErrMissingFields
	}
	return s.repo.Update(id, b)
}

func (s *Service) Reorder(order map[int]int) error {
	if len(order) == 0 {
		return nil
	}
	return s.repo.Reorder(order)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
