package user

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), "test-secret")

	created, err := svc.Register("mia@example.com", "hunter22", "Mia", "010-1234-5678")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned user id")
	}
	if created.Role != "user" {
		t.Fatalf("expected default role user, got %q", created.Role)
	}
	if created.PasswordHash == "hunter22" {
		t.Fatal("password stored in the clear")
	}

	u, token, err := svc.Authenticate("mia@example.com", "hunter22")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.ID != created.ID {
		t.Fatalf("expected user %d, got %d", created.ID, u.ID)
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if int(claims["user_id"].(float64)) != created.ID {
		t.Fatalf("unexpected user_id claim: %v", claims["user_id"])
	}
	if claims["role"] != "user" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), "test-secret")

	if _, err := svc.Register("mia@example.com", "hunter22", "Mia", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register("mia@example.com", "other", "Imposter", ""); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), "test-secret")

	if _, err := svc.Register("mia@example.com", "hunter22", "Mia", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Authenticate("mia@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Authenticate("nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUpdateProfileKeepsPasswordWhenBlank(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), "test-secret")

	created, err := svc.Register("mia@example.com", "hunter22", "Mia", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.UpdateProfile(created.ID, "Mia Park", "010-0000-0000", ""); err != nil {
		t.Fatalf("update: %v", err)
	}

	// old password still works after a profile-only update
	if _, _, err := svc.Authenticate("mia@example.com", "hunter22"); err != nil {
		t.Fatalf("authenticate after update: %v", err)
	}

	u, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Name != "Mia Park" || u.Phone != "010-0000-0000" {
		t.Fatalf("profile not updated: %+v", u)
	}
}
