package connection

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func TestCreateRequest(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO connect_requests (member_id, trainer_id, status, created_at) VALUES ($1, $2, 'Pending', NOW()) RETURNING request_id, member_id, trainer_id, status, created_at")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"request_id", "member_id", "trainer_id", "status", "created_at"}).
			AddRow(7, 1, 2, StatusPending, time.Now()))

	req, err := repo.CreateRequest(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(7), req.ID)
	require.Equal(t, StatusPending, req.Status)
}

func TestUpdateRequestStatus(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE connect_requests SET status = $3 WHERE request_id = $1 AND status = $2")).
		WithArgs(int64(7), StatusPending, StatusApproved).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateRequestStatus(context.Background(), 7, StatusPending, StatusApproved))

	// already decided: zero rows affected
	mock.ExpectExec(regexp.QuoteMeta("UPDATE connect_requests SET status = $3 WHERE request_id = $1 AND status = $2")).
		WithArgs(int64(7), StatusPending, StatusRejected).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRequestStatus(context.Background(), 7, StatusPending, StatusRejected)
	require.ErrorIs(t, err, ErrRequestNotPending)
}

func TestIsConnected(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS( SELECT 1 FROM connect_requests WHERE member_id = $1 AND trainer_id = $2 AND status = 'Approved' )")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.IsConnected(context.Background(), 1, 2)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestHasActiveRequest(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS( SELECT 1 FROM connect_requests WHERE member_id = $1 AND trainer_id = $2 AND status IN ('Pending', 'Approved') )")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := repo.HasActiveRequest(context.Background(), 1, 2)
	require.NoError(t, err)
	require.False(t, ok)
}
