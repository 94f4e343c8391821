package postgres

import (
	"context"
	"fmt"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

var _ repository.PushSubscriptionRepository = (*PushSubscriptionRepo)(nil)

// PushSubscriptionRepo implementação do porto PushSubscriptionRepository sobre PostgreSQL.
type PushSubscriptionRepo struct {
	q Querier
}

// NewPushSubscriptionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPushSubscriptionRepository(q Querier) *PushSubscriptionRepo {
	return &PushSubscriptionRepo{q: q}
}

// Upsert insere ou atualiza a subscrição com chave (user_id, endpoint).
// Subscrever duas vezes o mesmo endpoint mantém uma única linha.
func (r *PushSubscriptionRepo) Upsert(ctx context.Context, sub *entity.PushSubscription) error {
	query := `
		INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, endpoint)
		DO UPDATE SET p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth`
	_, err := r.q.Exec(ctx, query,
		sub.ID, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth, sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert push subscription: %w", err)
	}
	return nil
}

// ListByUser devolve todas as subscrições de um utilizador.
func (r *PushSubscriptionRepo) ListByUser(ctx context.Context, userID string) ([]*entity.PushSubscription, error) {
	query := `SELECT id, user_id, endpoint, p256dh, auth, created_at
		FROM push_subscriptions WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list push subscriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.PushSubscription
	for rows.Next() {
		var s entity.PushSubscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dh, &s.Auth, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan push subscription: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// DeleteByEndpoint remove a subscrição de um utilizador para um endpoint.
func (r *PushSubscriptionRepo) DeleteByEndpoint(ctx context.Context, userID, endpoint string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM push_subscriptions WHERE user_id = $1 AND endpoint = $2`, userID, endpoint)
	if err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}

// DeleteEndpoint remove o endpoint para todos os utilizadores (limpeza de 404/410).
func (r *PushSubscriptionRepo) DeleteEndpoint(ctx context.Context, endpoint string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
	if err != nil {
		return fmt.Errorf("delete dead endpoint: %w", err)
	}
	return nil
}
