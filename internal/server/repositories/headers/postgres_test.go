package headers

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now())
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+headers`).
		WithArgs(int64(10), "Insurance").
		WillReturnRows(rows)

	h, err := repo.Create(context.Background(), &models.Header{AccountID: 10, Name: "Insurance"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if h.ID != 1 {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+headers`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.Header{AccountID: 10, Name: "Insurance"})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestGetByID_ScopedToAccount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*account_id,\s*name.*WHERE\s+id\s*=\s*\$1\s+AND\s+account_id\s*=\s*\$2`).
		WithArgs(int64(5), int64(10)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 10, 5)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSelectByAccount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "account_id", "name", "created_at"}).
		AddRow(int64(1), int64(10), "Insurance", now).
		AddRow(int64(2), int64(10), "Vehicles", now)
	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+headers\s+WHERE\s+account_id\s*=\s*\$1`).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	got, err := repo.SelectByAccount(context.Background(), 10)
	if err != nil {
		t.Fatalf("SelectByAccount error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Insurance" || got[1].Name != "Vehicles" {
		t.Fatalf("unexpected headers: %+v", got)
	}
}
