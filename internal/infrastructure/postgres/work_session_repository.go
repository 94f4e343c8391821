package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

var _ repository.WorkSessionRepository = (*WorkSessionRepo)(nil)

// WorkSessionRepo implementação do porto WorkSessionRepository sobre PostgreSQL.
type WorkSessionRepo struct {
	q Querier
}

// NewWorkSessionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewWorkSessionRepository(q Querier) *WorkSessionRepo {
	return &WorkSessionRepo{q: q}
}

// Start abre uma sessão de trabalho.
func (r *WorkSessionRepo) Start(ctx context.Context, s *entity.WorkSession) error {
	query := `
		INSERT INTO work_sessions (id, agent_id, started_at, ended_at, active)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, s.ID, s.AgentID, s.StartedAt, s.EndedAt, s.Active)
	if err != nil {
		return fmt.Errorf("insert work session: %w", err)
	}
	return nil
}

// GetActiveByAgent devolve a sessão ativa do agente (nil se nenhuma).
func (r *WorkSessionRepo) GetActiveByAgent(ctx context.Context, agentID string) (*entity.WorkSession, error) {
	query := `SELECT id, agent_id, started_at, ended_at, active
		FROM work_sessions WHERE agent_id = $1 AND active ORDER BY started_at DESC LIMIT 1`
	var s entity.WorkSession
	err := r.q.QueryRow(ctx, query, agentID).Scan(&s.ID, &s.AgentID, &s.StartedAt, &s.EndedAt, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active work session: %w", err)
	}
	return &s, nil
}

// End termina a sessão ativa do agente. Sem sessão ativa é um no-op
// (o beacon de descarga de página dispara mesmo sem sessão).
func (r *WorkSessionRepo) End(ctx context.Context, agentID string, endedAt time.Time) error {
	_, err := r.q.Exec(ctx, `
		UPDATE work_sessions SET ended_at = $2, active = FALSE
		WHERE agent_id = $1 AND active`, agentID, endedAt)
	if err != nil {
		return fmt.Errorf("end work session: %w", err)
	}
	return nil
}

// Stats agregados de sessões do agente: contagem, segundos totais e se está ativo.
func (r *WorkSessionRepo) Stats(ctx context.Context, agentID string) (*repository.WorkSessionStats, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                AS session_count,
	    COALESCE(SUM(EXTRACT(EPOCH FROM (COALESCE(ended_at, NOW()) - started_at))), 0)::BIGINT AS total_seconds,
	    COALESCE(BOOL_OR(active), FALSE)                                        AS active_now
	FROM work_sessions
	WHERE agent_id = $1`

	stats := repository.WorkSessionStats{AgentID: agentID}
	err := r.q.QueryRow(ctx, query, agentID).Scan(&stats.SessionCount, &stats.TotalSeconds, &stats.ActiveNow)
	if err != nil {
		return nil, fmt.Errorf("work session stats: %w", err)
	}
	return &stats, nil
}
