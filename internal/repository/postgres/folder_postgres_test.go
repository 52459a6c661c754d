package postgres

import (
	"context"
	"testing"
	"time"

	"archira/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestFolderPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	created := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	f := &model.Folder{ID: "folder-1", Name: "Reports", CreatedAt: created}

	rows := sqlmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow(f.ID, f.Name, f.CreatedAt)

	mock.ExpectQuery("INSERT INTO folders").
		WithArgs(f.ID, f.Name, f.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, f)

	assert.NoError(t, err)
	assert.Equal(t, "Reports", result.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)

	rows := sqlmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow("folder-1", "Reports", time.Now()).
		AddRow("folder-2", "Invoices", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WillReturnRows(rows)

	items, err := repo.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	t.Run("existing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM folders WHERE id = ?").
			WithArgs("folder-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "folder-1"))
	})

	t.Run("absent row is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM folders WHERE id = ?").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(ctx, "missing"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
