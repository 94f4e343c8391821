package repository

import (
	"context"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// NotificationRepository define o porto de persistência para notificações em aplicação.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}
