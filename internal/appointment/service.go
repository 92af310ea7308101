package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymbook/internal/api"
	"gymbook/internal/availability"
	"gymbook/internal/connection"
	"gymbook/internal/metrics"
	"gymbook/internal/notification"
)

// Notifier is informed of lifecycle transitions. Implementations must be
// fire-and-forget; a delivery failure never affects the outcome of the
// operation that triggered it.
type Notifier interface {
	Notify(ctx context.Context, userID int64, kind, content string)
}

type Service interface {
	BookSession(ctx context.Context, memberID, slotID int64, projectName, description string) (*Appointment, error)
	AcceptAppointment(ctx context.Context, appointmentID, trainerID int64) error
	RejectAppointment(ctx context.Context, appointmentID, trainerID int64, feedback string) error
	CancelAppointment(ctx context.Context, appointmentID, memberID int64) error

	PendingForTrainer(ctx context.Context, trainerID int64) ([]AppointmentDetail, error)
	UpcomingForMember(ctx context.Context, memberID int64, page, pageSize int, status string) (*PagedAppointments, error)
	HistoricalForMember(ctx context.Context, memberID int64, page, pageSize int, status string) (*PagedAppointments, error)
	DailyCompletedHours(ctx context.Context, memberID int64, startDate, endDate time.Time) ([]DailyStat, error)
}

type service struct {
	repo        Repository
	slots       availability.Repository
	connections connection.Checker
	notifier    Notifier
	now         func() time.Time
}

func NewService(repo Repository, slots availability.Repository, connections connection.Checker, notifier Notifier) Service {
	return &service{
		repo:        repo,
		slots:       slots,
		connections: connections,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *service) BookSession(ctx context.Context, memberID, slotID int64, projectName, description string) (*Appointment, error) {
	slot, err := s.slots.GetSlotByID(ctx, slotID)
	if errors.Is(err, availability.ErrSlotNotFound) {
		metrics.RecordBooking("not_found")
		return nil, api.NotFoundf("availability slot %d not found", slotID)
	}
	if err != nil {
		return nil, err
	}

	if slot.Status != availability.StatusFree {
		metrics.RecordBooking("conflict")
		return nil, api.Conflictf("availability slot is already booked")
	}

	connected, err := s.connections.IsConnected(ctx, memberID, slot.TrainerID)
	if err != nil {
		return nil, err
	}
	if !connected {
		metrics.RecordBooking("not_connected")
		return nil, api.Conflictf("you are not connected with this trainer")
	}

	// Advisory pre-check; the repository repeats it inside the booking
	// transaction, where it is authoritative.
	overlap, err := s.repo.HasOverlap(ctx, memberID, slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, err
	}
	if overlap {
		metrics.RecordBooking("overlap")
		return nil, api.Conflictf("you already have an active booking overlapping this time range")
	}

	booking, err := s.repo.BookSession(ctx, memberID, slotID, projectName, description)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound):
			metrics.RecordBooking("not_found")
			return nil, api.NotFoundf("availability slot %d not found", slotID)
		case errors.Is(err, ErrSlotNotFree):
			metrics.RecordBooking("conflict")
			return nil, api.Conflictf("availability slot is already booked")
		case errors.Is(err, ErrMemberOverlap):
			metrics.RecordBooking("overlap")
			return nil, api.Conflictf("you already have an active booking overlapping this time range")
		default:
			return nil, err
		}
	}

	metrics.RecordBooking("created")
	s.notifier.Notify(ctx, slot.TrainerID, notification.KindBookingRequested,
		fmt.Sprintf("New session booking request: %s (%s - %s).",
			projectName,
			slot.StartTime.Format(time.RFC3339),
			slot.EndTime.Format(time.RFC3339),
		))

	return booking, nil
}

func (s *service) AcceptAppointment(ctx context.Context, appointmentID, trainerID int64) error {
	booking, err := s.loadForTrainer(ctx, appointmentID, trainerID)
	if err != nil {
		return err
	}

	if err := s.repo.Approve(ctx, appointmentID); err != nil {
		if errors.Is(err, ErrNotPending) {
			return api.Conflictf("appointment has already been decided")
		}
		return err
	}

	metrics.RecordDecision("approved")
	s.notifier.Notify(ctx, booking.MemberID, notification.KindAppointmentApproved,
		fmt.Sprintf("Your booking %q has been approved.", booking.ProjectName))

	return nil
}

func (s *service) RejectAppointment(ctx context.Context, appointmentID, trainerID int64, feedback string) error {
	booking, err := s.loadForTrainer(ctx, appointmentID, trainerID)
	if err != nil {
		return err
	}

	if err := s.repo.Reject(ctx, appointmentID, booking.AvailabilityID); err != nil {
		if errors.Is(err, ErrNotPending) {
			return api.Conflictf("appointment has already been decided")
		}
		return err
	}

	message := fmt.Sprintf("Your booking %q has been rejected.", booking.ProjectName)
	if feedback != "" {
		message += " Feedback: " + feedback
	}

	metrics.RecordDecision("rejected")
	s.notifier.Notify(ctx, booking.MemberID, notification.KindAppointmentRejected, message)

	return nil
}

func (s *service) CancelAppointment(ctx context.Context, appointmentID, memberID int64) error {
	booking, err := s.repo.GetByID(ctx, appointmentID)
	if errors.Is(err, ErrNotFound) {
		return api.NotFoundf("appointment %d not found", appointmentID)
	}
	if err != nil {
		return err
	}

	// Ownership failures read as not-found so members cannot probe other
	// people's booking ids.
	if booking.MemberID != memberID {
		return api.NotFoundf("appointment %d not found", appointmentID)
	}

	switch booking.Status {
	case StatusApproved:
		return api.Conflictf("approved appointments cannot be cancelled; contact your trainer")
	case StatusRejected, StatusCancelled, StatusCompleted:
		return api.Conflictf("appointment is already %s", booking.Status)
	}

	if err := s.repo.Cancel(ctx, appointmentID, booking.AvailabilityID); err != nil {
		if errors.Is(err, ErrNotPending) {
			return api.Conflictf("appointment is no longer pending")
		}
		return err
	}

	metrics.RecordCancellation()
	return nil
}

func (s *service) loadForTrainer(ctx context.Context, appointmentID, trainerID int64) (*Appointment, error) {
	booking, err := s.repo.GetByID(ctx, appointmentID)
	if errors.Is(err, ErrNotFound) {
		return nil, api.NotFoundf("appointment %d not found", appointmentID)
	}
	if err != nil {
		return nil, err
	}

	if booking.TrainerID != trainerID {
		return nil, api.Forbiddenf("appointment belongs to another trainer")
	}
	if booking.Status != StatusPending {
		return nil, api.Conflictf("appointment has already been decided")
	}

	return booking, nil
}

func (s *service) PendingForTrainer(ctx context.Context, trainerID int64) ([]AppointmentDetail, error) {
	return s.repo.ListPendingForTrainer(ctx, trainerID)
}

func (s *service) UpcomingForMember(ctx context.Context, memberID int64, page, pageSize int, status string) (*PagedAppointments, error) {
	page, pageSize = normalizePage(page, pageSize)

	items, total, err := s.repo.ListUpcomingForMember(ctx, memberID, s.now(), status, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &PagedAppointments{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *service) HistoricalForMember(ctx context.Context, memberID int64, page, pageSize int, status string) (*PagedAppointments, error) {
	page, pageSize = normalizePage(page, pageSize)

	items, total, err := s.repo.ListHistoricalForMember(ctx, memberID, status, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &PagedAppointments{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *service) DailyCompletedHours(ctx context.Context, memberID int64, startDate, endDate time.Time) ([]DailyStat, error) {
	if endDate.Before(startDate) {
		return nil, api.BadRequestf("end date must not be before start date")
	}

	return s.repo.DailyCompletedStats(ctx, memberID, startDate, endDate)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
