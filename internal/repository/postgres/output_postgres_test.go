package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"pdfapi/internal/model"
	"pdfapi/internal/repository"
)

var columns = []string{"id", "name", "requested_name", "operation", "source_filename", "storage_path", "media_type", "size", "created_at"}

func TestOutputPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOutputPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	rec := &model.OutputRecord{
		ID:             "test-uuid",
		Name:           "protected_report_abc.pdf",
		RequestedName:  "protected_report.pdf",
		Operation:      "protect",
		SourceFilename: "report.pdf",
		StoragePath:    "/srv/outputs/protected_report_abc.pdf",
		MediaType:      model.MediaTypePDF,
		Size:           123,
		CreatedAt:      now,
	}

	rows := sqlmock.NewRows(columns).
		AddRow(rec.ID, rec.Name, rec.RequestedName, rec.Operation, rec.SourceFilename, rec.StoragePath, rec.MediaType, rec.Size, rec.CreatedAt)

	mock.ExpectQuery("INSERT INTO outputs").
		WithArgs(rec.ID, rec.Name, rec.RequestedName, rec.Operation, rec.SourceFilename, rec.StoragePath, rec.MediaType, rec.Size, rec.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, rec)

	assert.NoError(t, err)
	assert.Equal(t, rec, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutputPostgres_CreateReplacesSameName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOutputPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	rec := &model.OutputRecord{
		ID:             "second-uuid",
		Name:           "protected_report.pdf",
		RequestedName:  "protected_report.pdf",
		Operation:      "protect",
		SourceFilename: "report.pdf",
		StoragePath:    "/srv/outputs/protected_report.pdf",
		MediaType:      model.MediaTypePDF,
		Size:           456,
		CreatedAt:      now,
	}

	// the earlier row keeps its id, every other column comes from rec
	rows := sqlmock.NewRows(columns).
		AddRow("first-uuid", rec.Name, rec.RequestedName, rec.Operation, rec.SourceFilename, rec.StoragePath, rec.MediaType, rec.Size, rec.CreatedAt)

	mock.ExpectQuery(`INSERT INTO outputs (.+) ON CONFLICT \(name\) DO UPDATE SET`).
		WithArgs(rec.ID, rec.Name, rec.RequestedName, rec.Operation, rec.SourceFilename, rec.StoragePath, rec.MediaType, rec.Size, rec.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, rec)

	assert.NoError(t, err)
	assert.Equal(t, "first-uuid", result.ID)
	assert.Equal(t, int64(456), result.Size)
	assert.Equal(t, now, result.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutputPostgres_FindByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOutputPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow("id-1", "split_a_1.pdf", "split_a.pdf", "split", "a.pdf", "/out/split_a_1.pdf", model.MediaTypePDF, 10, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM outputs WHERE name = ?").
			WithArgs("split_a_1.pdf").
			WillReturnRows(rows)

		rec, err := repo.FindByName(ctx, "split_a_1.pdf")

		assert.NoError(t, err)
		assert.Equal(t, "id-1", rec.ID)
		assert.Equal(t, "split", rec.Operation)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM outputs WHERE name = ?").
			WithArgs("missing.pdf").
			WillReturnError(sql.ErrNoRows)

		rec, err := repo.FindByName(ctx, "missing.pdf")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, rec)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutputPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOutputPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM outputs").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(columns).
			AddRow("id-2", "b.pdf", "b.pdf", "merge", "x.pdf", "/out/b.pdf", model.MediaTypePDF, 20, time.Now()).
			AddRow("id-1", "a.pdf", "a.pdf", "rotate", "y.pdf", "/out/a.pdf", model.MediaTypePDF, 10, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM outputs ORDER BY").
			WithArgs(10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, "b.pdf", res.Items[0].Name)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM outputs").
			WillReturnError(sql.ErrConnDone)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10})

		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
