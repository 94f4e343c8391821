package postgres

import (
	"context"
	"fmt"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

var _ repository.SupportMessageRepository = (*SupportMessageRepo)(nil)

// SupportMessageRepo implementação do porto SupportMessageRepository sobre PostgreSQL.
type SupportMessageRepo struct {
	q Querier
}

// NewSupportMessageRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSupportMessageRepository(q Querier) *SupportMessageRepo {
	return &SupportMessageRepo{q: q}
}

// Create persiste uma mensagem de suporte.
func (r *SupportMessageRepo) Create(ctx context.Context, m *entity.SupportMessage) error {
	query := `
		INSERT INTO support_messages (id, name, email, phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Email, m.Phone, m.Message, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert support message: %w", err)
	}
	return nil
}
