package notification

import "time"

// Notification kinds produced by the appointment and connection lifecycles.
const (
	KindBookingRequested    = "booking_requested"
	KindAppointmentApproved = "appointment_approved"
	KindAppointmentRejected = "appointment_rejected"
	KindConnectRequested    = "connect_requested"
	KindConnectApproved     = "connect_approved"
	KindConnectRejected     = "connect_rejected"
)

type Notification struct {
	ID        int64     `db:"notification_id" json:"notification_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Kind      string    `db:"kind" json:"kind"`
	Content   string    `db:"content" json:"content"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// deliveryJob is what gets queued for the background delivery loop.
type deliveryJob struct {
	NotificationID int64     `json:"notification_id"`
	UserID         int64     `json:"user_id"`
	Kind           string    `json:"kind"`
	Content        string    `json:"content"`
	Created        time.Time `json:"created"`
}
