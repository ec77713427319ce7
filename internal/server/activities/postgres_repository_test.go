package activities

import (
	"context"
	"database/sql"
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

func TestAdd(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO farm_activity (user_id, field_name, activity, date)")).
		WithArgs(int64(3), "east paddock", "sowing", "2024-06-01").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo, err := NewPostgresRepository(db)
	require.NoError(t, err)

	a := &Activity{UserID: 3, FieldName: "east paddock", Activity: "sowing", Date: "2024-06-01"}
	require.NoError(t, repo.Add(context.Background(), a))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"user_id", "field_name", "activity", "date"}).
		AddRow(int64(3), "east paddock", "sowing", "2024-06-01").
		AddRow(int64(3), "west paddock", "irrigation", "2024-06-02")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, field_name, activity, date FROM farm_activity")).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	repo, _ := NewPostgresRepository(db)

	got, err := repo.ListByUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sowing", got[0].Activity)
	assert.Equal(t, "west paddock", got[1].FieldName)
}

func TestListByUser_Empty(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, field_name, activity, date FROM farm_activity")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "field_name", "activity", "date"}))

	repo, _ := NewPostgresRepository(db)

	got, err := repo.ListByUser(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, got)
}
