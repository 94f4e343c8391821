package repository

import (
	"context"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// SupportMessageRepository define o porto de persistência para mensagens de suporte.
type SupportMessageRepository interface {
	Create(ctx context.Context, msg *entity.SupportMessage) error
}
