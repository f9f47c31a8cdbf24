package catalog

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

// ListVisible returns storefront products, hiding HIDDEN entries.
// categoryID <= 0 means all categories.
func (s *Service) ListVisible(categoryID int) ([]Product, error) {
	all, err := s.repo.List(categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if p.Visible() {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetVisible is GetByID restricted to storefront-visible products.
func (s *Service) GetVisible(id int) (Product, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	if !p.Visible() {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// ListAll is the admin view including hidden products.
func (s *Service) ListAll() ([]Product, error) {
	return s.repo.List(0)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.SoftDelete(id)
}
