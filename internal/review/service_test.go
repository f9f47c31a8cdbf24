package review

import (
	"errors"
	"testing"
	"time"
)

// fakeRepo records creates and answers HasPurchased from a fixed set.
type fakeRepo struct {
	purchased map[[2]int]bool
	created   []Review
}

func (f *fakeRepo) Create(rv Review) (Review, error) {
	rv.ID = len(f.created) + 1
	rv.CreatedAt = time.Now()
	f.created = append(f.created, rv)
	return rv, nil
}

func (f *fakeRepo) ListByProduct(productID int) ([]Review, error) {
	var out []Review
	for _, rv := range f.created {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (f *fakeRepo) List(offset, limit int) ([]Review, int, error) {
	return f.created, len(f.created), nil
}

func (f *fakeRepo) Delete(id int) error {
	for i, rv := range f.created {
		if rv.ID == id {
			f.created = append(f.created[:i], f.created[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeRepo) HasPurchased(userID, productID int) (bool, error) {
	return f.purchased[[2]int{userID, productID}], nil
}

func TestCreateRequiresPurchase(t *testing.T) {
	repo := &fakeRepo{purchased: map[[2]int]bool{{1, 10}: true}}
	svc := NewService(repo)

	if _, err := svc.Create(2, 10, 5, "never bought it"); !errors.Is(err, ErrNotPurchaser) {
		t.Fatalf("expected ErrNotPurchaser, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("review created despite missing purchase: %+v", repo.created)
	}

	rv, err := svc.Create(1, 10, 5, "lovely scent")
	if err != nil {
		t.Fatalf("create by buyer: %v", err)
	}
	if rv.Rating != 5 || rv.ProductID != 10 {
		t.Fatalf("unexpected review: %+v", rv)
	}
}

func TestCreateRejectsOutOfRangeRating(t *testing.T) {
	repo := &fakeRepo{purchased: map[[2]int]bool{{1, 10}: true}}
	svc := NewService(repo)

	for _, rating := range []int{0, -1, 6} {
		if _, err := svc.Create(1, 10, rating, ""); !errors.Is(err, ErrBadRating) {
			t.Fatalf("rating %d: expected ErrBadRating, got %v", rating, err)
		}
	}
}

func TestAdminListClampsPaging(t *testing.T) {
	repo := &fakeRepo{purchased: map[[2]int]bool{{1, 10}: true}}
	svc := NewService(repo)

	if _, _, err := svc.AdminList(0, 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, _, err := svc.AdminList(-3, 5000); err != nil {
		t.Fatalf("list with silly values: %v", err)
	}
}
