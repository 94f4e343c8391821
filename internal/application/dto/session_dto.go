package dto

import "time"

// WorkSessionResponse uma sessão de trabalho de agente.
type WorkSessionResponse struct {
	ID        string     `json:"id"`
	AgentID   string     `json:"agent_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Active    bool       `json:"active"`
	// DurationSeconds duração até agora para sessões ativas.
	DurationSeconds int64 `json:"duration_seconds"`
}

// WorkSessionStatsResponse agregados das sessões de um agente.
type WorkSessionStatsResponse struct {
	AgentID      string `json:"agent_id"`
	SessionCount int64  `json:"session_count"`
	TotalSeconds int64  `json:"total_seconds"`
	ActiveNow    bool   `json:"active_now"`
}
