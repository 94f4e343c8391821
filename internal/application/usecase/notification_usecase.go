package usecase

import (
	"context"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

// NotificationUseCase leitura e marcação das notificações em aplicação.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase constrói o caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List devolve as notificações do utilizador, mais recentes primeiro.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, limit, offset int) ([]dto.NotificationResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, toNotificationResponse(n))
	}
	return items, nil
}

// UnreadCount devolve o contador do sino.
func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (*dto.UnreadCountResponse, error) {
	count, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Unread: count}, nil
}

// MarkRead marca uma notificação do utilizador como lida.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	return uc.repo.MarkRead(ctx, userID, notificationID)
}

// MarkAllRead marca todas as notificações do utilizador como lidas.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.repo.MarkAllRead(ctx, userID)
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Kind:      n.Kind,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
