package repository

import (
	"context"
	"time"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// WorkSessionStats agregados de sessões de um agente.
type WorkSessionStats struct {
	AgentID      string
	SessionCount int64
	TotalSeconds int64
	ActiveNow    bool
}

// WorkSessionRepository define o porto de persistência para sessões de trabalho.
type WorkSessionRepository interface {
	Start(ctx context.Context, session *entity.WorkSession) error
	GetActiveByAgent(ctx context.Context, agentID string) (*entity.WorkSession, error)
	// End termina a sessão ativa do agente; sem sessão ativa é um no-op.
	End(ctx context.Context, agentID string, endedAt time.Time) error
	Stats(ctx context.Context, agentID string) (*WorkSessionStats, error)
}
