package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
	"github.com/orbislink/agrilink-api/pkg/logger"
)

// SupportUseCase receção de mensagens do formulário público de contacto.
// A mensagem é persistida e o texto formatado para reencaminhamento WhatsApp
// fica no log da equipa de suporte.
type SupportUseCase struct {
	repo repository.SupportMessageRepository
	log  *logger.Logger
}

// NewSupportUseCase constrói o caso de uso.
func NewSupportUseCase(repo repository.SupportMessageRepository, log *logger.Logger) *SupportUseCase {
	return &SupportUseCase{repo: repo, log: log}
}

// Submit persiste a mensagem e regista o texto de relay.
func (uc *SupportUseCase) Submit(ctx context.Context, in dto.SupportMessageRequest) (*dto.SupportMessageResponse, error) {
	msg := &entity.SupportMessage{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	relay := fmt.Sprintf("*Nova mensagem de suporte AgriLink*\nNome: %s\nEmail: %s\nTelefone: %s\nMensagem: %s",
		in.Name, in.Email, in.Phone, in.Message)
	uc.log.Info().Str("support_message_id", msg.ID).Str("relay", relay).Msg("mensagem de suporte recebida")

	return &dto.SupportMessageResponse{
		ID:      msg.ID,
		Message: "Mensagem recebida. A equipa de suporte entrará em contacto.",
	}, nil
}
