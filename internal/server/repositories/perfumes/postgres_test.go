package perfumes

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkovalev7/scentshop/internal/common"
	"github.com/dkovalev7/scentshop/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func perfumeRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "brand", "price", "perfume_type", "description",
		"img_url", "stock_quantity", "volume", "concentration", "is_active", "created_at"})
	for _, id := range ids {
		rows.AddRow(id, "Oud Royale", "Maison", 120.0, "edp", "", "", 5, 50, "20%", true, time.Now())
	}
	return rows
}

func TestList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+perfumes\s+WHERE\s+is_active\s+ORDER\s+BY\s+id\s+OFFSET\s+\$1\s+LIMIT\s+\$2`).
		WithArgs(0, 50).
		WillReturnRows(perfumeRows(1, 2))

	got, err := repo.List(context.Background(), 0, 50)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected perfumes: %+v", got)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+perfumes\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(1)).
		WillReturnRows(perfumeRows(1))

	got, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != 1 || got.Name != "Oud Royale" {
		t.Fatalf("unexpected perfume: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+perfumes\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+perfumes\s+SET`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Perfume{ID: 99, Name: "x"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDeactivate_Flows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+perfumes\s+SET\s+is_active\s*=\s*FALSE\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Deactivate(context.Background(), 1); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}

	mock.ExpectExec(`(?s)^UPDATE\s+perfumes\s+SET\s+is_active\s*=\s*FALSE\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Deactivate(context.Background(), 99); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestAdjustStock_ReturnsRemaining(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+perfumes\s+SET\s+stock_quantity\s*=\s*stock_quantity\s*\+\s*\$2`).
		WithArgs(int64(1), -3).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(2))

	remaining, err := repo.AdjustStock(context.Background(), 1, -3)
	if err != nil {
		t.Fatalf("AdjustStock error: %v", err)
	}
	if remaining != 2 {
		t.Fatalf("unexpected remaining: %d", remaining)
	}
}

func TestAdjustStock_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+perfumes\s+SET\s+stock_quantity`).
		WillReturnError(errors.New("db down"))

	_, err := repo.AdjustStock(context.Background(), 1, -1)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
