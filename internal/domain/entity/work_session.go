package entity

import "time"

// WorkSession sessão de trabalho de um agente de apoio.
// Inicia automaticamente no login e termina por ação explícita ou pelo
// beacon de descarga de página (melhor esforço).
type WorkSession struct {
	ID        string
	AgentID   string
	StartedAt time.Time
	EndedAt   *time.Time
	Active    bool
}

// Duration devolve a duração da sessão; sessões ativas contam até now.
func (s WorkSession) Duration(now time.Time) time.Duration {
	if s.EndedAt != nil {
		return s.EndedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}
