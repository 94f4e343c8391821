package push

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/pkg/config"
)

// Verificação em tempo de compilação de que WebPushSender implementa PushSender.
var _ ports.PushSender = (*WebPushSender)(nil)

// WebPushSender adaptador de entrega web push com autenticação VAPID.
type WebPushSender struct {
	cfg config.PushConfig
	ttl int // segundos que o push service retém a mensagem
}

// NewWebPushSender constrói o adaptador.
func NewWebPushSender(cfg config.PushConfig) *WebPushSender {
	return &WebPushSender{cfg: cfg, ttl: 86400}
}

// SendAll entrega o payload a todas as subscrições em paralelo e recolhe um
// resultado por subscrição. Nenhuma falha individual interrompe as restantes;
// endpoints mortos (404/410) vêm marcados com Gone para limpeza oportunista.
func (s *WebPushSender) SendAll(ctx context.Context, subs []*entity.PushSubscription, payload ports.PushPayload) []ports.PushResult {
	body, err := json.Marshal(payload)
	if err != nil {
		// Payload não serializável: falha uniforme sem tocar na rede.
		results := make([]ports.PushResult, len(subs))
		for i, sub := range subs {
			results[i] = ports.PushResult{Endpoint: sub.Endpoint, Error: "payload inválido: " + err.Error()}
		}
		return results
	}

	results := make([]ports.PushResult, len(subs))
	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub *entity.PushSubscription) {
			defer wg.Done()
			results[i] = s.sendOne(ctx, sub, body)
		}(i, sub)
	}
	wg.Wait()
	return results
}

func (s *WebPushSender) sendOne(ctx context.Context, sub *entity.PushSubscription, body []byte) ports.PushResult {
	result := ports.PushResult{Endpoint: sub.Endpoint}

	wsub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}
	resp, err := webpush.SendNotificationWithContext(ctx, body, wsub, &webpush.Options{
		Subscriber:      s.cfg.VAPIDSubject,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             s.ttl,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		// Subscrição expirada ou revogada no push service.
		result.Gone = true
		result.Error = "endpoint inexistente"
	case resp.StatusCode >= 400:
		result.Error = http.StatusText(resp.StatusCode)
	default:
		result.Success = true
	}
	return result
}
