package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/domain"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

// ProductUseCase publicação e consulta do catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create publica um anúncio em nome do agricultor autenticado.
func (uc *ProductUseCase) Create(ctx context.Context, producerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Quantity.IsNegative() || in.Quantity.IsZero() || in.PriceKz.IsNegative() || in.PriceKz.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		ProducerID:   producerID,
		Type:         in.Type,
		Name:         in.Name,
		Description:  in.Description,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		PriceKz:      in.PriceKz,
		HarvestDate:  in.HarvestDate,
		Province:     in.Province,
		Municipality: in.Municipality,
		PhotoURLs:    in.PhotoURLs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID devolve um anúncio.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista o catálogo com filtros opcionais de tipo e província.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// ListByProducer lista os anúncios do próprio agricultor.
func (uc *ProductUseCase) ListByProducer(ctx context.Context, producerID string, limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByProducer(ctx, producerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		ProducerID:   p.ProducerID,
		Type:         p.Type,
		Name:         p.Name,
		Description:  p.Description,
		Quantity:     p.Quantity,
		Unit:         p.Unit,
		PriceKz:      p.PriceKz,
		HarvestDate:  p.HarvestDate,
		Province:     p.Province,
		Municipality: p.Municipality,
		PhotoURLs:    p.PhotoURLs,
		CreatedAt:    p.CreatedAt,
	}
}
