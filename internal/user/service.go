package user

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo      Repository
	jwtSecret []byte
}

func NewService(repo Repository, jwtSecret string) *Service {
	return &Service{repo: repo, jwtSecret: []byte(jwtSecret)}
}

func (s *Service) Register(email, password, name, phone string) (User, error) {
	if _, err := s.repo.GetByEmail(email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		Phone:        phone,
		Role:         "user",
	})
}

// Authenticate verifies the credentials and returns a signed JWT along
// with the user on success.
func (s *Service) Authenticate(email, password string) (User, string, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return User{}, "", err
	}
	return u, signed, nil
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) UpdateProfile(id int, name, phone, password string) (User, error) {
	u := User{Name: name, Phone: phone}
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = string(hashed)
	}
	return s.repo.Update(id, u)
}

func (s *Service) List() ([]User, error) {
	return s.repo.List()
}

// AdminDetail returns the user together with their order, review and
// inquiry history for the back-office member screen.
func (s *Service) AdminDetail(id int) (AdminUserDetail, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return AdminUserDetail{}, err
	}
	orders, reviews, inquiries, err := s.repo.History(id)
	if err != nil {
		return AdminUserDetail{}, err
	}
	return AdminUserDetail{User: u, Orders: orders, Reviews: reviews, Inquiries: inquiries}, nil
}

func (s *Service) AdminUpdate(id int, name, phone, role string) (User, error) {
	if role != "" && role != "user" && role != RoleAdmin {
		return User{}, ErrInvalidRole
	}
	return s.repo.AdminUpdate(id, User{Name: name, Phone: phone, Role: role})
}
