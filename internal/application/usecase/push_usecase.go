package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
	"github.com/orbislink/agrilink-api/pkg/config"
	"github.com/orbislink/agrilink-api/pkg/logger"
)

// PushUseCase ciclo de vida das subscrições web push e fan-out administrativo.
type PushUseCase struct {
	subsRepo repository.PushSubscriptionRepository
	sender   ports.PushSender
	cfg      config.PushConfig
	log      *logger.Logger
}

// NewPushUseCase constrói o caso de uso.
func NewPushUseCase(subsRepo repository.PushSubscriptionRepository, sender ports.PushSender, cfg config.PushConfig, log *logger.Logger) *PushUseCase {
	return &PushUseCase{subsRepo: subsRepo, sender: sender, cfg: cfg, log: log}
}

// VAPIDPublicKey devolve a chave pública que o frontend usa para subscrever.
func (uc *PushUseCase) VAPIDPublicKey() dto.VAPIDKeyResponse {
	return dto.VAPIDKeyResponse{PublicKey: uc.cfg.VAPIDPublicKey}
}

// Subscribe faz upsert da subscrição do browser; subscrever duas vezes o mesmo
// endpoint é idempotente (uma linha por (user, endpoint)).
func (uc *PushUseCase) Subscribe(ctx context.Context, userID string, in dto.SubscribeRequest) error {
	sub := &entity.PushSubscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		Endpoint:  in.Endpoint,
		P256dh:    in.Keys.P256dh,
		Auth:      in.Keys.Auth,
		CreatedAt: time.Now(),
	}
	return uc.subsRepo.Upsert(ctx, sub)
}

// Unsubscribe remove a subscrição do utilizador para o endpoint dado.
func (uc *PushUseCase) Unsubscribe(ctx context.Context, userID, endpoint string) error {
	return uc.subsRepo.DeleteByEndpoint(ctx, userID, endpoint)
}

// Send entrega uma notificação a todas as subscrições do utilizador alvo.
// Cada tentativa corre até ao fim; endpoints mortos (404/410) são removidos.
func (uc *PushUseCase) Send(ctx context.Context, in dto.SendPushRequest) (*dto.PushDeliveryResponse, error) {
	subs, err := uc.subsRepo.ListByUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	summary := &dto.PushDeliveryResponse{}
	if len(subs) == 0 {
		return summary, nil
	}

	results := uc.sender.SendAll(ctx, subs, ports.PushPayload{
		Title: in.Title,
		Body:  in.Body,
		Tag:   in.Tag,
		Icon:  in.Icon,
		Sound: in.Sound,
		Data:  in.Data,
	})
	for _, res := range results {
		switch {
		case res.Success:
			summary.Sent++
		case res.Gone:
			summary.Failed++
			if err := uc.subsRepo.DeleteEndpoint(ctx, res.Endpoint); err != nil {
				uc.log.Warn().Err(err).Msg("remover endpoint morto falhou")
			} else {
				summary.Removed++
			}
		default:
			summary.Failed++
			uc.log.Warn().Str("endpoint", res.Endpoint).Str("error", res.Error).Msg("entrega push falhou")
		}
	}
	return summary, nil
}
