package inquiry

import "strings"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(userID, productID int, title, content string) (Inquiry, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return Inquiry{}, ErrMissingFields
	}
	return s.repo.Create(Inquiry{
		UserID:    userID,
		ProductID: productID,
		Title:     title,
		Content:   content,
	})
}

func (s *Service) ListForUser(userID int) ([]Inquiry, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) AdminList(status string, page, limit int) ([]Inquiry, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.List(status, (page-1)*limit, limit)
}

func (s *Service) AdminAnswer(id int, answer string) (Inquiry, error) {
	if strings.TrimSpace(answer) == "" {
		return Inquiry{}, ErrMissingAnswer
	}
	return s.repo.Answer(id, answer)
}
