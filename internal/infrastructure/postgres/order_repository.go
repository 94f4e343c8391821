package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orbislink/agrilink-api/internal/domain"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, cart_id, buyer_id, producer_id, product_id, product_name, quantity,
	unit_price_kz, total_kz, status, delivery_date, company_name, contact_name, contact_phone,
	created_at, updated_at`

// OrderRepo implementação do porto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository constrói o adaptador de persistência de encomendas. Passar pool ou tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste uma encomenda.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CartID, o.BuyerID, o.ProducerID, o.ProductID, o.ProductName, o.Quantity,
		o.UnitPriceKz, o.TotalKz, o.Status, o.DeliveryDate, o.CompanyName, o.ContactName,
		o.ContactPhone, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtém uma encomenda por ID (nil se não existir).
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	row := r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return o, nil
}

// ListByBuyer lista encomendas colocadas por um comprador.
func (r *OrderRepo) ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE buyer_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, buyerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders by buyer: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListByCart lista as linhas de um carrinho do comprador, na ordem de criação.
func (r *OrderRepo) ListByCart(ctx context.Context, cartID, buyerID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE cart_id = $1 AND buyer_id = $2
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, cartID, buyerID)
	if err != nil {
		return nil, fmt.Errorf("list orders by cart: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListByProducer lista encomendas recebidas por um produtor.
func (r *OrderRepo) ListByProducer(ctx context.Context, producerID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE producer_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, producerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders by producer: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// UpdateStatus muda o estado de uma encomenda, delimitado pelo dono: o update
// só afeta linhas cujo buyer_id ou producer_id corresponda a ownerID.
// Devolve ErrNotFound se nenhuma linha for afetada.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID, ownerID, newStatus string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $3, updated_at = NOW()
		WHERE id = $1 AND (buyer_id = $2 OR producer_id = $2)`,
		orderID, ownerID, newStatus,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.CartID, &o.BuyerID, &o.ProducerID, &o.ProductID, &o.ProductName,
		&o.Quantity, &o.UnitPriceKz, &o.TotalKz, &o.Status, &o.DeliveryDate,
		&o.CompanyName, &o.ContactName, &o.ContactPhone, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
