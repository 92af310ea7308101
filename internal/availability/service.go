package availability

import (
	"context"
	"errors"
	"time"

	"gymbook/internal/api"
)

type Service interface {
	PublishSlot(ctx context.Context, trainerID int64, startTime, endTime time.Time) (*Slot, error)
	ListForTrainer(ctx context.Context, trainerID int64, onlyFuture bool) ([]Slot, error)
	ListFreeForTrainer(ctx context.Context, trainerID int64) ([]Slot, error)
	RemoveSlot(ctx context.Context, slotID, trainerID int64) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) PublishSlot(ctx context.Context, trainerID int64, startTime, endTime time.Time) (*Slot, error) {
	if !startTime.Before(endTime) {
		return nil, api.BadRequestf("start time must be before end time")
	}
	if startTime.Before(s.now()) {
		return nil, api.BadRequestf("cannot publish a slot in the past")
	}

	return s.repo.CreateSlot(ctx, trainerID, startTime, endTime)
}

func (s *service) ListForTrainer(ctx context.Context, trainerID int64, onlyFuture bool) ([]Slot, error) {
	return s.repo.ListByTrainer(ctx, trainerID, onlyFuture)
}

func (s *service) ListFreeForTrainer(ctx context.Context, trainerID int64) ([]Slot, error) {
	return s.repo.ListFreeByTrainer(ctx, trainerID)
}

func (s *service) RemoveSlot(ctx context.Context, slotID, trainerID int64) error {
	err := s.repo.DeleteFreeSlot(ctx, slotID, trainerID)
	if errors.Is(err, ErrSlotNotFreeOrAbsent) {
		return api.Conflictf("slot does not exist, belongs to another trainer, or is booked")
	}
	return err
}
