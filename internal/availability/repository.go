package availability

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrSlotNotFound        = errors.New("availability slot not found")
	ErrSlotNotFreeOrAbsent = errors.New("availability slot not found or not free")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) CreateSlot(ctx context.Context, trainerID int64, startTime, endTime time.Time) (*Slot, error) {
	query := `
		INSERT INTO trainer_availability (trainer_id, start_time, end_time, status, created_at)
		VALUES ($1, $2, $3, 'Free', NOW())
		RETURNING availability_id, trainer_id, start_time, end_time, status, created_at
	`

	var slot Slot
	err := r.db.GetContext(ctx, &slot, query, trainerID, startTime, endTime)
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *repository) GetSlotByID(ctx context.Context, id int64) (*Slot, error) {
	query := `
		SELECT availability_id, trainer_id, start_time, end_time, status, created_at
		FROM trainer_availability
		WHERE availability_id = $1
	`

	var slot Slot
	err := r.db.GetContext(ctx, &slot, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *repository) ListByTrainer(ctx context.Context, trainerID int64, onlyFuture bool) ([]Slot, error) {
	query := `
		SELECT availability_id, trainer_id, start_time, end_time, status, created_at
		FROM trainer_availability
		WHERE trainer_id = $1
	`
	if onlyFuture {
		query += " AND start_time > NOW()"
	}
	query += " ORDER BY start_time ASC"

	var slots []Slot
	err := r.db.SelectContext(ctx, &slots, query, trainerID)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) ListFreeByTrainer(ctx context.Context, trainerID int64) ([]Slot, error) {
	query := `
		SELECT availability_id, trainer_id, start_time, end_time, status, created_at
		FROM trainer_availability
		WHERE trainer_id = $1 AND status = 'Free' AND start_time > NOW()
		ORDER BY start_time ASC
	`

	var slots []Slot
	err := r.db.SelectContext(ctx, &slots, query, trainerID)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

// DeleteFreeSlot removes a slot only while no active booking consumes it.
func (r *repository) DeleteFreeSlot(ctx context.Context, id, trainerID int64) error {
	query := `
		DELETE FROM trainer_availability
		WHERE availability_id = $1 AND trainer_id = $2 AND status = 'Free'
	`

	result, err := r.db.ExecContext(ctx, query, id, trainerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSlotNotFreeOrAbsent
	}

	return nil
}
