package repository

import (
	"context"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// UserRepository define o porto de persistência para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetAgentByCode resolve o id de um agente a partir do código público.
	GetAgentByCode(ctx context.Context, code string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// SetEmailVerified marca o email como verificado (pós-OTP).
	SetEmailVerified(ctx context.Context, userID string) error
	// SetPasswordHash usado pelo fluxo de reset de password.
	SetPasswordHash(ctx context.Context, userID, hash string) error
}
