package usecase

import (
	"context"

	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

// OrderTxRunner executa um callback com repositórios ligados a uma transação.
// A colocação de um carrinho grava as linhas e as notificações dos produtores
// como uma unidade atómica; o Commit/Rollback é responsabilidade do runner.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		notificationRepo repository.NotificationRepository,
	) error) error
}
