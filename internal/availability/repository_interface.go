package availability

import (
	"context"
	"time"
)

type Repository interface {
	CreateSlot(ctx context.Context, trainerID int64, startTime, endTime time.Time) (*Slot, error)
	GetSlotByID(ctx context.Context, id int64) (*Slot, error)
	ListByTrainer(ctx context.Context, trainerID int64, onlyFuture bool) ([]Slot, error)
	ListFreeByTrainer(ctx context.Context, trainerID int64) ([]Slot, error)
	DeleteFreeSlot(ctx context.Context, id, trainerID int64) error
}
