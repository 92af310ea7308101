package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound      = errors.New("appointment not found")
	ErrSlotNotFound  = errors.New("availability slot not found")
	ErrSlotNotFree   = errors.New("availability slot is not free")
	ErrMemberOverlap = errors.New("member has an overlapping active booking")
	ErrNotPending    = errors.New("appointment is not pending")
)

const overlapQuery = `
	SELECT COUNT(*)
	FROM appointment_bookings ab
	JOIN trainer_availability ta ON ab.availability_id = ta.availability_id
	WHERE ab.member_id = $1
	  AND ab.appointment_status IN ('Pending', 'Approved')
	  AND ta.start_time < $3
	  AND ta.end_time > $2
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) BookSession(ctx context.Context, memberID, slotID int64, projectName, description string) (*Appointment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock the slot row so concurrent bookings on the same slot serialize here.
	var slot struct {
		TrainerID int64     `db:"trainer_id"`
		StartTime time.Time `db:"start_time"`
		EndTime   time.Time `db:"end_time"`
		Status    string    `db:"status"`
	}
	err = tx.GetContext(ctx, &slot, `
		SELECT trainer_id, start_time, end_time, status
		FROM trainer_availability
		WHERE availability_id = $1
		FOR UPDATE
	`, slotID)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}

	if slot.Status != "Free" {
		return nil, ErrSlotNotFree
	}

	// Serialize bookings of the same member across different slots. The slot
	// row lock only orders transactions on one slot; without this two
	// transactions on different slots both pass the overlap count below at
	// READ COMMITTED and the member ends up double-booked.
	_, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, memberID)
	if err != nil {
		return nil, err
	}

	// Re-check overlap inside the transaction; the pre-check in the service
	// is advisory only and racy by itself.
	var overlapping int
	err = tx.GetContext(ctx, &overlapping, overlapQuery, memberID, slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrMemberOverlap
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE trainer_availability
		SET status = 'Booked'
		WHERE availability_id = $1
	`, slotID)
	if err != nil {
		return nil, err
	}

	var booking Appointment
	err = tx.GetContext(ctx, &booking, `
		INSERT INTO appointment_bookings (member_id, trainer_id, availability_id, project_name, description, appointment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, 'Pending', NOW())
		RETURNING appointment_id, member_id, trainer_id, availability_id, project_name, description, appointment_status, created_at
	`, memberID, slot.TrainerID, slotID, projectName, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	query := `
		SELECT appointment_id, member_id, trainer_id, availability_id, project_name, description, appointment_status, created_at
		FROM appointment_bookings
		WHERE appointment_id = $1
	`

	var booking Appointment
	err := r.db.GetContext(ctx, &booking, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) Approve(ctx context.Context, id int64) error {
	query := `
		UPDATE appointment_bookings
		SET appointment_status = 'Approved'
		WHERE appointment_id = $1 AND appointment_status = 'Pending'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

func (r *repository) Reject(ctx context.Context, id, slotID int64) error {
	return r.closeAndFreeSlot(ctx, id, slotID, "Rejected")
}

func (r *repository) Cancel(ctx context.Context, id, slotID int64) error {
	return r.closeAndFreeSlot(ctx, id, slotID, "Cancelled")
}

// closeAndFreeSlot terminates a Pending booking and releases its slot in one
// transaction, so a reader can never observe a Booked slot without an active
// booking or the reverse.
func (r *repository) closeAndFreeSlot(ctx context.Context, id, slotID int64, to string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE appointment_bookings
		SET appointment_status = $2
		WHERE appointment_id = $1 AND appointment_status = 'Pending'
	`, id, to)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotPending
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE trainer_availability
		SET status = 'Free'
		WHERE availability_id = $1 AND status = 'Booked'
	`, slotID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) HasOverlap(ctx context.Context, memberID int64, start, end time.Time) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, overlapQuery, memberID, start, end)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *repository) ListPendingForTrainer(ctx context.Context, trainerID int64) ([]AppointmentDetail, error) {
	query := `
		SELECT
			ab.appointment_id,
			ab.member_id,
			ab.trainer_id,
			ab.availability_id,
			ab.project_name,
			ab.description,
			ab.appointment_status,
			ab.created_at,
			ta.start_time AS session_start,
			ta.end_time AS session_end,
			t.name AS trainer_name,
			m.name AS member_name
		FROM appointment_bookings ab
		JOIN trainer_availability ta ON ab.availability_id = ta.availability_id
		JOIN users t ON ab.trainer_id = t.user_id
		JOIN users m ON ab.member_id = m.user_id
		WHERE ab.trainer_id = $1 AND ab.appointment_status = 'Pending'
		ORDER BY ta.start_time ASC
	`

	var list []AppointmentDetail
	err := r.db.SelectContext(ctx, &list, query, trainerID)
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (r *repository) ListUpcomingForMember(ctx context.Context, memberID int64, now time.Time, status string, limit, offset int) ([]AppointmentDetail, int, error) {
	statusCond := "ab.appointment_status IN ('Pending', 'Approved')"
	args := []interface{}{memberID, now}
	if status != "" {
		statusCond = "ab.appointment_status = $3"
		args = append(args, status)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM appointment_bookings ab
		JOIN trainer_availability ta ON ab.availability_id = ta.availability_id
		WHERE ab.member_id = $1 AND ta.start_time > $2 AND ` + statusCond

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery := `
		SELECT
			ab.appointment_id,
			ab.member_id,
			ab.trainer_id,
			ab.availability_id,
			ab.project_name,
			ab.description,
			ab.appointment_status,
			ab.created_at,
			ta.start_time AS session_start,
			ta.end_time AS session_end,
			t.name AS trainer_name,
			m.name AS member_name
		FROM appointment_bookings ab
		JOIN trainer_availability ta ON ab.availability_id = ta.availability_id
		JOIN users t ON ab.trainer_id = t.user_id
		JOIN users m ON ab.member_id = m.user_id
		WHERE ab.member_id = $1 AND ta.start_time > $2 AND ` + statusCond + `
		ORDER BY ta.start_time ASC
		LIMIT ` + limitPlaceholder(len(args)+1) + ` OFFSET ` + limitPlaceholder(len(args)+2)

	listArgs := append(args, limit, offset)

	var list []AppointmentDetail
	if err := r.db.SelectContext(ctx, &list, listQuery, listArgs...); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *repository) ListHistoricalForMember(ctx context.Context, memberID int64, status string, limit, offset int) ([]AppointmentDetail, int, error) {
	statusCond := "ab.appointment_status NOT IN ('Pending', 'Approved')"
	args := []interface{}{memberID}
	if status != "" {
		statusCond = "ab.appointment_status = $2"
		args = append(args, status)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM appointment_bookings ab
		JOIN trainer_availability ta ON ab.availability_id = ta.availability_id
		WHERE ab.member_id = $1 AND ` + statusCond

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery := `
		SELECT
			ab.appointment_id,
			ab.member_id,
			ab.trainer_id,
			ab.availability_id,
			ab.project_name,
			ab.description,
			ab.appointment_status,
			ab.created_at,
			ta.start_time AS session_start,
			ta.end_time AS session_end,
			t.name AS trainer_name,
			m.name AS member_name
		FROM appointment_bookings ab
		JOIN trainer_availability ta ON ab.availability_id = ta.availability_id
		JOIN users t ON ab.trainer_id = t.user_id
		JOIN users m ON ab.member_id = m.user_id
		WHERE ab.member_id = $1 AND ` + statusCond + `
		ORDER BY ta.start_time DESC
		LIMIT ` + limitPlaceholder(len(args)+1) + ` OFFSET ` + limitPlaceholder(len(args)+2)

	listArgs := append(args, limit, offset)

	var list []AppointmentDetail
	if err := r.db.SelectContext(ctx, &list, listQuery, listArgs...); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *repository) DailyCompletedStats(ctx context.Context, memberID int64, startDate, endDate time.Time) ([]DailyStat, error) {
	query := `
		SELECT DATE(ta.end_time)::text AS date, COUNT(*) AS hours
		FROM appointment_bookings ab
		JOIN trainer_availability ta ON ab.availability_id = ta.availability_id
		WHERE ab.member_id = $1
		  AND ab.appointment_status = 'Completed'
		  AND ta.end_time BETWEEN $2 AND $3
		GROUP BY DATE(ta.end_time)
		ORDER BY date ASC
	`

	var stats []DailyStat
	err := r.db.SelectContext(ctx, &stats, query, memberID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// limitPlaceholder numbers the LIMIT/OFFSET parameters after the optional
// status filter has or has not bound one.
func limitPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
