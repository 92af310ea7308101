package appointment

import (
	"context"
	"time"
)

type Repository interface {
	// BookSession atomically marks the slot Booked, re-validates the member's
	// overlap constraint, and inserts a Pending booking. All-or-nothing.
	BookSession(ctx context.Context, memberID, slotID int64, projectName, description string) (*Appointment, error)

	GetByID(ctx context.Context, id int64) (*Appointment, error)

	// Approve flips a Pending booking to Approved. The slot stays Booked.
	Approve(ctx context.Context, id int64) error

	// Reject flips a Pending booking to Rejected and frees its slot, atomically.
	Reject(ctx context.Context, id, slotID int64) error

	// Cancel flips a Pending booking to Cancelled and frees its slot, atomically.
	Cancel(ctx context.Context, id, slotID int64) error

	// HasOverlap reports whether the member holds an active booking whose slot
	// satisfies existing.start < end AND existing.end > start (half-open).
	HasOverlap(ctx context.Context, memberID int64, start, end time.Time) (bool, error)

	ListPendingForTrainer(ctx context.Context, trainerID int64) ([]AppointmentDetail, error)
	ListUpcomingForMember(ctx context.Context, memberID int64, now time.Time, status string, limit, offset int) ([]AppointmentDetail, int, error)
	ListHistoricalForMember(ctx context.Context, memberID int64, status string, limit, offset int) ([]AppointmentDetail, int, error)
	DailyCompletedStats(ctx context.Context, memberID int64, startDate, endDate time.Time) ([]DailyStat, error)
}
