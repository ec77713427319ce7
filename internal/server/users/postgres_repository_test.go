package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spirocarbon/farmrecord/internal/common"
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

func TestGetByEmail_Found(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"email", "password", "user_id"}).
		AddRow("a@example.com", "stored", int64(7))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT email, password, user_id FROM lookup")).
		WithArgs("a@example.com").
		WillReturnRows(rows)

	repo, err := NewPostgresRepository(db)
	require.NoError(t, err)

	cred, err := repo.GetByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cred.UserID)
	assert.Equal(t, "stored", cred.Password)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT email, password, user_id FROM lookup")).
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	repo, _ := NewPostgresRepository(db)

	_, err := repo.GetByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByEmail_QueryError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT email, password, user_id FROM lookup")).
		WillReturnError(errors.New("boom"))

	repo, _ := NewPostgresRepository(db)

	_, err := repo.GetByEmail(context.Background(), "a@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdatePassword(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE lookup SET password = $1")).
		WithArgs("newpass", "a@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo, _ := NewPostgresRepository(db)

	err := repo.UpdatePassword(context.Background(), "a@example.com", "newpass")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
