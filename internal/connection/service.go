package connection

import (
	"context"
	"errors"
	"fmt"

	"gymbook/internal/api"
	"gymbook/internal/auth"
	"gymbook/internal/metrics"
	"gymbook/internal/notification"
	"gymbook/internal/user"
)

// Notifier is informed about connect request events. Delivery failures are
// logged by the implementation and never surface here.
type Notifier interface {
	Notify(ctx context.Context, userID int64, kind, content string)
}

type Service interface {
	RequestConnection(ctx context.Context, memberID, trainerID int64) (*ConnectRequest, error)
	AcceptRequest(ctx context.Context, requestID, trainerID int64) error
	RejectRequest(ctx context.Context, requestID, trainerID int64) error
	ListPendingForTrainer(ctx context.Context, trainerID int64) ([]ConnectRequest, error)
	IsConnected(ctx context.Context, memberID, trainerID int64) (bool, error)
}

type service struct {
	repo     Repository
	users    user.Repository
	notifier Notifier
}

func NewService(repo Repository, users user.Repository, notifier Notifier) Service {
	return &service{repo: repo, users: users, notifier: notifier}
}

func (s *service) RequestConnection(ctx context.Context, memberID, trainerID int64) (*ConnectRequest, error) {
	isTrainer, err := s.users.ExistsWithRole(ctx, trainerID, auth.RoleTrainer)
	if err != nil {
		return nil, err
	}
	if !isTrainer {
		return nil, api.NotFoundf("trainer %d not found", trainerID)
	}

	active, err := s.repo.HasActiveRequest(ctx, memberID, trainerID)
	if err != nil {
		return nil, err
	}
	if active {
		metrics.RecordConnectRequest("duplicate")
		return nil, api.Conflictf("a pending or approved request already exists for this trainer")
	}

	member, err := s.users.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	req, err := s.repo.CreateRequest(ctx, memberID, trainerID)
	if err != nil {
		return nil, err
	}

	metrics.RecordConnectRequest("created")
	s.notifier.Notify(ctx, trainerID, notification.KindConnectRequested,
		fmt.Sprintf("%s has requested to train with you.", member.Name))

	return req, nil
}

func (s *service) AcceptRequest(ctx context.Context, requestID, trainerID int64) error {
	return s.decide(ctx, requestID, trainerID, StatusApproved, notification.KindConnectApproved,
		"Your connect request has been approved.")
}

func (s *service) RejectRequest(ctx context.Context, requestID, trainerID int64) error {
	return s.decide(ctx, requestID, trainerID, StatusRejected, notification.KindConnectRejected,
		"Your connect request has been rejected.")
}

func (s *service) decide(ctx context.Context, requestID, trainerID int64, to, kind, message string) error {
	req, err := s.repo.GetRequestByID(ctx, requestID)
	if errors.Is(err, ErrRequestNotFound) {
		return api.NotFoundf("connect request %d not found", requestID)
	}
	if err != nil {
		return err
	}

	if req.TrainerID != trainerID {
		return api.Forbiddenf("connect request belongs to another trainer")
	}
	if req.Status != StatusPending {
		return api.Conflictf("connect request has already been decided")
	}

	if err := s.repo.UpdateRequestStatus(ctx, requestID, StatusPending, to); err != nil {
		if errors.Is(err, ErrRequestNotPending) {
			return api.Conflictf("connect request has already been decided")
		}
		return err
	}

	s.notifier.Notify(ctx, req.MemberID, kind, message)
	return nil
}

func (s *service) ListPendingForTrainer(ctx context.Context, trainerID int64) ([]ConnectRequest, error) {
	return s.repo.ListPendingForTrainer(ctx, trainerID)
}

func (s *service) IsConnected(ctx context.Context, memberID, trainerID int64) (bool, error) {
	return s.repo.IsConnected(ctx, memberID, trainerID)
}
