package appointment

import "time"

// Status values of an appointment booking. Pending and Approved are the
// "active" states: they occupy the underlying slot and count for overlap.
const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

func IsActiveStatus(status string) bool {
	return status == StatusPending || status == StatusApproved
}

type Appointment struct {
	ID             int64     `db:"appointment_id" json:"appointment_id"`
	MemberID       int64     `db:"member_id" json:"member_id"`
	TrainerID      int64     `db:"trainer_id" json:"trainer_id"`
	AvailabilityID int64     `db:"availability_id" json:"availability_id"`
	ProjectName    string    `db:"project_name" json:"project_name"`
	Description    string    `db:"description" json:"description"`
	Status         string    `db:"appointment_status" json:"appointment_status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// AppointmentDetail joins the slot time range and the counterpart's name
// onto the booking row for list views.
type AppointmentDetail struct {
	Appointment
	SessionStart time.Time `db:"session_start" json:"session_start"`
	SessionEnd   time.Time `db:"session_end" json:"session_end"`
	TrainerName  string    `db:"trainer_name" json:"trainer_name"`
	MemberName   string    `db:"member_name" json:"member_name"`
}

// DailyStat is one day's completed-session count. "Hours" counts sessions,
// not elapsed time, matching the product's definition of a training hour.
type DailyStat struct {
	Date  string `db:"date" json:"date"`
	Hours int    `db:"hours" json:"hours"`
}

// PagedAppointments is a page of list results plus the unpaged total.
type PagedAppointments struct {
	Items    []AppointmentDetail `json:"items"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

type BookSessionRequest struct {
	AvailabilityID int64  `json:"availability_id" binding:"required"`
	ProjectName    string `json:"project_name" binding:"required,max=100"`
	Description    string `json:"description" binding:"max=500"`
}

type RejectRequest struct {
	Feedback string `json:"feedback" binding:"max=500"`
}
