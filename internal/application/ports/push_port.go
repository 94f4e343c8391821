package ports

import (
	"context"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// PushPayload formato JSON da notificação consumida pelo service worker.
type PushPayload struct {
	Title              string         `json:"title"`
	Body               string         `json:"body"`
	Icon               string         `json:"icon,omitempty"`
	Badge              string         `json:"badge,omitempty"`
	Sound              string         `json:"sound,omitempty"`
	Data               map[string]any `json:"data,omitempty"`
	Vibrate            []int          `json:"vibrate,omitempty"`
	Tag                string         `json:"tag,omitempty"`
	RequireInteraction bool           `json:"requireInteraction,omitempty"`
}

// PushResult resultado de uma tentativa de entrega a um endpoint.
type PushResult struct {
	Endpoint   string `json:"endpoint"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
	// Gone indica endpoint morto (HTTP 404/410): a subscrição deve ser removida.
	Gone bool `json:"-"`
}

// PushSender define o porto de saída para entrega web push.
// SendAll dispara as entregas em paralelo e devolve um resultado por subscrição;
// falhas individuais nunca interrompem as restantes.
type PushSender interface {
	SendAll(ctx context.Context, subs []*entity.PushSubscription, payload PushPayload) []PushResult
}

// RealtimePublisher define o porto de saída para invalidações em tempo real.
// Implementado pelo hub WebSocket; os casos de uso apenas sinalizam o utilizador.
type RealtimePublisher interface {
	NotifyRefresh(userID string)
}
