package ports

import (
	"context"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// ReceiptGenerator define o porto de saída para geração do comprovativo de
// encomenda em PDF. As orders pertencem todas ao mesmo carrinho (CartID).
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, buyer *entity.User, orders []*entity.Order) ([]byte, error)
}
