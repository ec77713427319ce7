package fields

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestListByUser(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"fid", "field_name"}).
		AddRow(int64(1), "north plot").
		AddRow(int64(2), "south plot")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT fid, field_name FROM lookup")).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	repo, err := NewPostgresRepository(db)
	require.NoError(t, err)

	got, err := repo.ListByUser(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Field{FID: 1, FieldName: "north plot"}, got[0])
	assert.Equal(t, Field{FID: 2, FieldName: "south plot"}, got[1])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_Empty(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT fid, field_name FROM lookup")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"fid", "field_name"}))

	repo, _ := NewPostgresRepository(db)

	got, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListByUser_QueryError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT fid, field_name FROM lookup")).
		WithArgs(int64(7)).
		WillReturnError(errors.New("connection reset"))

	repo, _ := NewPostgresRepository(db)

	_, err := repo.ListByUser(context.Background(), 7)
	assert.Error(t, err)
}
