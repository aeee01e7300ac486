package cards

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cardcore/cardcore/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func cardRows(t *testing.T, id string, box int, due time.Time) *sqlmock.Rows {
	t.Helper()
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "stack_id", "front", "back", "box", "due_at", "front_image_key", "created_at", "updated_at",
	}).AddRow(id, "s1", "f", "b", box, due, "", now, now)
}

func TestNextDue_ReturnsOldestDueCard(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)SELECT .* FROM\s+cards\s+WHERE stack_id = \$1 AND due_at <= \$2\s+ORDER BY due_at, created_at\s+LIMIT 1`).
		WithArgs("s1", now).
		WillReturnRows(cardRows(t, "c1", 2, now.Add(-time.Hour)))

	got, err := repo.NextDue(context.Background(), "s1", now)
	if err != nil {
		t.Fatalf("NextDue error: %v", err)
	}
	if got.ID != "c1" || got.Box != 2 {
		t.Fatalf("unexpected card: %+v", got)
	}
}

func TestNextDue_NothingDue(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)SELECT .* FROM\s+cards`).
		WithArgs("s1", now).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.NextDue(context.Background(), "s1", now)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestAdvanceBox_UpdatesBoxAndDue(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	due := time.Now().Add(24 * time.Hour)
	mock.ExpectQuery(`(?s)UPDATE cards\s+SET box = \$2, due_at = \$3, updated_at = now\(\)`).
		WithArgs("c1", 3, due).
		WillReturnRows(cardRows(t, "c1", 3, due))

	got, err := repo.AdvanceBox(context.Background(), "c1", 3, due)
	if err != nil {
		t.Fatalf("AdvanceBox error: %v", err)
	}
	if got.Box != 3 {
		t.Fatalf("expected box 3, got %d", got.Box)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM cards WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
