package usecase

import (
	"context"
	"time"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

// WorkSessionUseCase sessões de trabalho de agentes: fim explícito, fim por
// beacon de descarga de página e estatísticas. O início é automático no login.
type WorkSessionUseCase struct {
	repo repository.WorkSessionRepository
}

// NewWorkSessionUseCase constrói o caso de uso.
func NewWorkSessionUseCase(repo repository.WorkSessionRepository) *WorkSessionUseCase {
	return &WorkSessionUseCase{repo: repo}
}

// End termina a sessão ativa do agente; sem sessão ativa é um no-op.
func (uc *WorkSessionUseCase) End(ctx context.Context, agentID string) error {
	return uc.repo.End(ctx, agentID, time.Now())
}

// Active devolve a sessão ativa do agente, ou nil.
func (uc *WorkSessionUseCase) Active(ctx context.Context, agentID string) (*dto.WorkSessionResponse, error) {
	session, err := uc.repo.GetActiveByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	now := time.Now()
	return &dto.WorkSessionResponse{
		ID:              session.ID,
		AgentID:         session.AgentID,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		Active:          session.Active,
		DurationSeconds: int64(session.Duration(now).Seconds()),
	}, nil
}

// Stats devolve os agregados das sessões do agente.
func (uc *WorkSessionUseCase) Stats(ctx context.Context, agentID string) (*dto.WorkSessionStatsResponse, error) {
	stats, err := uc.repo.Stats(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return &dto.WorkSessionStatsResponse{
		AgentID:      stats.AgentID,
		SessionCount: stats.SessionCount,
		TotalSeconds: stats.TotalSeconds,
		ActiveNow:    stats.ActiveNow,
	}, nil
}
