package availability

import "time"

const (
	StatusFree   = "Free"
	StatusBooked = "Booked"
)

// Slot is a trainer-published bookable time window. Its status is owned by
// the appointment lifecycle: Free -> Booked on booking, Booked -> Free when
// the consuming booking is rejected or cancelled.
type Slot struct {
	ID        int64     `db:"availability_id" json:"availability_id"`
	TrainerID int64     `db:"trainer_id" json:"trainer_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PublishSlotRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
