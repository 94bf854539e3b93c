package service

import (
	"context"
	"fmt"
	"time"

	"shop-kart/internal/model"
	"shop-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// notificationService implements NotificationService.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo repository.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		logger:           logger.With().Str("service", "notification").Logger(),
	}
}

// Record persists one event.
func (s *notificationService) Record(ctx context.Context, eventType, message string, data map[string]any) (*model.Notification, error) {
	n := &model.Notification{
		ID:        uuid.New(),
		Type:      eventType,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// List retrieves all notifications, newest first.
func (s *notificationService) List(ctx context.Context) ([]model.Notification, error) {
	notifications, err := s.notificationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read.
func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	n, err := s.notificationRepo.MarkRead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	if n == nil {
		return nil, model.NewNotFound("NOTIFICATION_NOT_FOUND", "Notification not found")
	}
	return n, nil
}
