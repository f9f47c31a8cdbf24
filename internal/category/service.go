package category

import (
	"errors"
	"strings"
)

var (
	ErrMissingName = errors.New("category name is required")
	ErrEmptyOrder  = errors.New("category ids are required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Category, error) {
	return s.repo.List()
}

func (s *Service) Create(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrMissingName
	}
	return s.repo.Create(Category{Name: name})
}

func (s *Service) Update(id int, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrMissingName
	}
	return s.repo.Update(Category{ID: id, Name: name})
}

func (s *Service) Reorder(ids []int) error {
	if len(ids) == 0 {
		return ErrEmptyOrder
	}
	return s.repo.Reorder(ids)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
