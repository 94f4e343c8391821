package repository

import (
	"context"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// ProductFilter filtros opcionais do catálogo.
type ProductFilter struct {
	Type     string
	Province string
}

// ProductRepository define o porto de persistência para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	ListByProducer(ctx context.Context, producerID string, limit, offset int) ([]*entity.Product, error)
}
