package connection

import "time"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// ConnectRequest is a member's application to train with a trainer. Only an
// Approved connection permits session bookings.
type ConnectRequest struct {
	ID        int64     `db:"request_id" json:"request_id"`
	MemberID  int64     `db:"member_id" json:"member_id"`
	TrainerID int64     `db:"trainer_id" json:"trainer_id"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateConnectRequest struct {
	TrainerID int64 `json:"trainer_id" binding:"required"`
}
