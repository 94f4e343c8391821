package repository

import (
	"context"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// PushSubscriptionRepository define o porto de persistência para subscrições web push.
type PushSubscriptionRepository interface {
	// Upsert insere ou atualiza a subscrição com chave (user_id, endpoint):
	// subscrever duas vezes o mesmo endpoint resulta numa única linha.
	Upsert(ctx context.Context, sub *entity.PushSubscription) error
	ListByUser(ctx context.Context, userID string) ([]*entity.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, userID, endpoint string) error
	// DeleteEndpoint remove por endpoint independentemente do utilizador,
	// usado na limpeza de endpoints mortos (HTTP 404/410 do push service).
	DeleteEndpoint(ctx context.Context, endpoint string) error
}
