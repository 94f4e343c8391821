package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orbislink/agrilink-api/internal/application/usecase"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

// Verificação em tempo de compilação de que TxRunner implementa OrderTxRunner.
var _ usecase.OrderTxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrders inicia uma transação, executa fn com repos ligados à tx e faz Commit ou Rollback.
// Usado para criar as várias linhas de um carrinho e as notificações dos produtores
// como uma unidade atómica.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	notificationRepo repository.NotificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	notificationRepo := NewNotificationRepository(tx)

	if err := fn(orderRepo, notificationRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
