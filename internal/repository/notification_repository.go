package repository

import (
	"context"
	"fmt"

	"shop-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// notificationRepository implements the NotificationRepository interface
// using PostgreSQL.
type notificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNotificationRepository creates a new PostgreSQL-backed notification
// repository.
func NewNotificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "notification").Logger(),
	}
}

// Create inserts a notification record.
func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, type, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, n.ID, n.Type, n.Message, n.Data, n.IsRead, n.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("type", n.Type).Msg("failed to create notification")
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// List retrieves all notifications, newest first.
func (r *notificationRepository) List(ctx context.Context) ([]model.Notification, error) {
	query := `
		SELECT id, type, message, data, is_read, created_at
		FROM notifications
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query notifications")
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.Data, &n.IsRead, &n.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan notification row")
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating notification rows")
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead flags a notification as read.
func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1
		RETURNING id, type, message, data, is_read, created_at
	`

	var n model.Notification
	err := r.pool.QueryRow(ctx, query, id).Scan(&n.ID, &n.Type, &n.Message, &n.Data, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("notification_id", id.String()).Msg("notification not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to mark notification read")
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return &n, nil
}
