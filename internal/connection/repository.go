package connection

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"gymbook/internal/db"
)

var (
	ErrRequestNotFound   = errors.New("connect request not found")
	ErrRequestNotPending = errors.New("connect request is not pending")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) CreateRequest(ctx context.Context, memberID, trainerID int64) (*ConnectRequest, error) {
	query := `
		INSERT INTO connect_requests (member_id, trainer_id, status, created_at)
		VALUES ($1, $2, 'Pending', NOW())
		RETURNING request_id, member_id, trainer_id, status, created_at
	`

	var req ConnectRequest
	err := r.db.GetContext(ctx, &req, query, memberID, trainerID)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *repository) GetRequestByID(ctx context.Context, id int64) (*ConnectRequest, error) {
	query := `
		SELECT request_id, member_id, trainer_id, status, created_at
		FROM connect_requests
		WHERE request_id = $1
	`

	var req ConnectRequest
	err := r.db.GetContext(ctx, &req, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *repository) UpdateRequestStatus(ctx context.Context, id int64, from, to string) error {
	query := `
		UPDATE connect_requests
		SET status = $3
		WHERE request_id = $1 AND status = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRequestNotPending
	}

	return nil
}

func (r *repository) ListPendingForTrainer(ctx context.Context, trainerID int64) ([]ConnectRequest, error) {
	query := `
		SELECT request_id, member_id, trainer_id, status, created_at
		FROM connect_requests
		WHERE trainer_id = $1 AND status = 'Pending'
		ORDER BY created_at ASC
	`

	var requests []ConnectRequest
	err := r.db.SelectContext(ctx, &requests, query, trainerID)
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *repository) HasActiveRequest(ctx context.Context, memberID, trainerID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM connect_requests
			WHERE member_id = $1 AND trainer_id = $2 AND status IN ('Pending', 'Approved')
		)
	`
	return db.Exists(ctx, r.db, query, memberID, trainerID)
}

func (r *repository) IsConnected(ctx context.Context, memberID, trainerID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM connect_requests
			WHERE member_id = $1 AND trainer_id = $2 AND status = 'Approved'
		)
	`
	return db.Exists(ctx, r.db, query, memberID, trainerID)
}
