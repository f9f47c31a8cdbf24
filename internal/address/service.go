package address

import "strings"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(userID int) ([]Address, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) Create(userID int, a Address) (Address, error) {
	if strings.TrimSpace(a.Recipient) == "" || strings.TrimSpace(a.Address) == "" {
		return Address{}, ErrMissingFields
	}
	a.UserID = userID
	return s.repo.Create(a)
}

func (s *Service) Update(userID, id int, a Address) (Address, error) {
	if strings.TrimSpace(a.Recipient) == "" || strings.TrimSpace(a.Address) == "" {
		return Address{}, ErrMissingFields
	}
	a.UserID = userID
	a.ID = id
	return s.repo.Update(a)
}

func (s *Service) Delete(userID, id int) error {
	return s.repo.Delete(userID, id)
}
