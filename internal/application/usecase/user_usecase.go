package usecase

import (
	"context"
	"time"

	"github.com/orbislink/agrilink-api/internal/application/auth"
	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/domain"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

// UserUseCase leitura e edição do próprio perfil.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetProfile devolve o perfil do utilizador autenticado.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(user), nil
}

// UpdateProfile aplica os campos enviados. Email, role e agent code não são editáveis.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Province != nil {
		user.Province = *in.Province
	}
	if in.Municipality != nil {
		user.Municipality = *in.Municipality
	}
	if in.CompanyName != nil {
		user.CompanyName = *in.CompanyName
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}
