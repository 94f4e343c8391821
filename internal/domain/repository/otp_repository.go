package repository

import (
	"context"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// OTPRepository define o porto de persistência para códigos de verificação
// e tokens de reset de password.
type OTPRepository interface {
	CreateOTP(ctx context.Context, code *entity.EmailOTP) error
	// LatestByUser devolve o código mais recente do utilizador (nil se nenhum).
	LatestByUser(ctx context.Context, userID string) (*entity.EmailOTP, error)
	ConsumeOTP(ctx context.Context, id string) error

	CreateReset(ctx context.Context, reset *entity.PasswordReset) error
	GetResetByToken(ctx context.Context, token string) (*entity.PasswordReset, error)
	ConsumeReset(ctx context.Context, id string) error
}
