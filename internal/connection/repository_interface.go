package connection

import "context"

// Checker is the narrow contract the booking lifecycle depends on.
type Checker interface {
	IsConnected(ctx context.Context, memberID, trainerID int64) (bool, error)
}

type Repository interface {
	CreateRequest(ctx context.Context, memberID, trainerID int64) (*ConnectRequest, error)
	GetRequestByID(ctx context.Context, id int64) (*ConnectRequest, error)
	UpdateRequestStatus(ctx context.Context, id int64, from, to string) error
	ListPendingForTrainer(ctx context.Context, trainerID int64) ([]ConnectRequest, error)
	HasActiveRequest(ctx context.Context, memberID, trainerID int64) (bool, error)
	IsConnected(ctx context.Context, memberID, trainerID int64) (bool, error)
}
