package notice

import (
	"errors"
	"strings"
)

var ErrMissingFields = errors.New("title and content are required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Notice, error) {
	return s.repo.List()
}

func (s *Service) Get(id int) (Notice, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(n Notice) (Notice, error) {
	if strings.TrimSpace(n.Title) == "" || strings.TrimSpace(n.Content) == "" {
		return Notice{}, ErrMissingFields
	}
	return s.repo.Create(n)
}

func (s *Service) Update(id int, n Notice) (Notice, error) {
	if strings.TrimSpace(n.Title) == "" || strings.TrimSpace(n.Content) == "" {
		return Notice{}, ErrMissingFields
	}
	n.ID = id
	return s.repo.Update(n)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
