package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"gymbook/internal/logger"
	"gymbook/internal/metrics"
)

const queueKey = "notifications"

// Service persists notifications and queues them for delivery. Notify is
// fire-and-forget: a queue or insert failure is logged, never propagated, so
// it can never roll back the transaction that triggered it.
type Service struct {
	db    *sqlx.DB
	redis *redis.Client
}

func New(database *sqlx.DB, redisAddr string) *Service {
	return &Service{
		db: database,
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
	}
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) Notify(ctx context.Context, userID int64, kind, content string) {
	query := `
		INSERT INTO notifications (user_id, kind, content, is_read, created_at)
		VALUES ($1, $2, $3, false, NOW())
		RETURNING notification_id
	`

	var id int64
	if err := s.db.GetContext(ctx, &id, query, userID, kind, content); err != nil {
		logger.Error("failed to store notification", "user_id", userID, "kind", kind, "error", err)
		metrics.RecordNotification(kind, "store_failed")
		return
	}

	job := deliveryJob{
		NotificationID: id,
		UserID:         userID,
		Kind:           kind,
		Content:        content,
		Created:        time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Error("failed to marshal notification job", "error", err)
		metrics.RecordNotification(kind, "queue_failed")
		return
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Error("failed to queue notification", "user_id", userID, "error", err)
		metrics.RecordNotification(kind, "queue_failed")
		return
	}

	metrics.RecordNotification(kind, "queued")
	metrics.NotificationQueueLength.Inc()
	logger.Debug("notification queued", "user_id", userID, "kind", kind)
}

// ListForUser returns a user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64, limit int) ([]Notification, error) {
	query := `
		SELECT notification_id, user_id, kind, content, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var list []Notification
	if err := s.db.SelectContext(ctx, &list, query, userID, limit); err != nil {
		return nil, err
	}

	return list, nil
}

// MarkRead flags a single notification as read.
func (s *Service) MarkRead(ctx context.Context, notificationID, userID int64) error {
	query := `
		UPDATE notifications
		SET is_read = true
		WHERE notification_id = $1 AND user_id = $2
	`
	_, err := s.db.ExecContext(ctx, query, notificationID, userID)
	return err
}

// Start runs the delivery loop until ctx is cancelled. Delivery here means
// handing off to whatever push channel is wired up; the default just logs,
// which keeps the queue drained in development.
func (s *Service) Start(ctx context.Context) {
	logger.Info("notification delivery loop started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification delivery loop stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		// redis.Nil on timeout, context.Canceled on shutdown
		return
	}

	if len(result) < 2 {
		return
	}

	var job deliveryJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("failed to decode notification job", "error", err)
		return
	}

	metrics.NotificationQueueLength.Dec()
	logger.Info("notification delivered",
		"notification_id", job.NotificationID,
		"user_id", job.UserID,
		"kind", job.Kind,
	)
}
