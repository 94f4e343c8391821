package repository

import (
	"context"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// OrderRepository define o porto de persistência para Order (DIP).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, error)
	// ListByCart devolve as linhas de um carrinho, delimitadas pelo comprador.
	ListByCart(ctx context.Context, cartID, buyerID string) ([]*entity.Order, error)
	ListByProducer(ctx context.Context, producerID string, limit, offset int) ([]*entity.Order, error)
	// UpdateStatus muda o estado; o update é sempre delimitado pelo dono
	// correspondente (buyerID para cancelar, producerID para avançar).
	UpdateStatus(ctx context.Context, orderID, ownerID, newStatus string) error
}
