package catalog

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var productCols = []string{
	"product_id", "name", "description", "price", "stock", "status",
	"image_url", "category_id", "is_deleted", "created_at", "updated_at",
}

func TestPostgresListByIDsKeepsRequestedOrder(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	// array_position keeps the result in the caller's id order
	mock.ExpectQuery(`array_position`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(12, "Lip balm", "", 1200, 5, "ON_SALE", "", nil, false, now, now).
			AddRow(11, "Hand cream", "", 3500, 10, "ON_SALE", "", nil, false, now, now))

	products, err := repo.ListByIDs([]int{12, 11})
	if err != nil {
		t.Fatalf("ListByIDs: %v", err)
	}
	if len(products) != 2 || products[0].ID != 12 || products[1].ID != 11 {
		t.Fatalf("order not preserved: %+v", products)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPostgresListByIDsEmptyInputSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	products, err := repo.ListByIDs(nil)
	if err != nil {
		t.Fatalf("ListByIDs: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected no products, got %+v", products)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
