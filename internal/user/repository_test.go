package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"gymbook/internal/api"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func TestFindByID(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, name, email, role, created_at FROM users WHERE user_id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "email", "role", "created_at"}).
			AddRow(5, "Alice", "alice@example.com", "trainer", now))

	u, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, "Alice", u.Name)
	require.Equal(t, "trainer", u.Role)
}

func TestFindByID_Missing(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, name, email, role, created_at FROM users WHERE user_id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "email", "role", "created_at"}))

	_, err := repo.FindByID(context.Background(), 99)
	require.Error(t, err)
	require.Equal(t, api.KindNotFound, api.KindOf(err))
}

func TestExistsWithRole(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS( SELECT 1 FROM users WHERE user_id = $1 AND role = $2 )")).
		WithArgs(int64(5), "trainer").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsWithRole(context.Background(), 5, "trainer")
	require.NoError(t, err)
	require.True(t, ok)
}
