package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// MarketTypeStats agregados de preço por tipo de produto no catálogo ativo.
type MarketTypeStats struct {
	ProductType   string
	ListingCount  int64
	MinPriceKz    decimal.Decimal
	AvgPriceKz    decimal.Decimal
	MaxPriceKz    decimal.Decimal
	TotalQuantity decimal.Decimal
}

// MarketRepository consultas de leitura para estatísticas de mercado.
type MarketRepository interface {
	StatsByType(ctx context.Context) ([]MarketTypeStats, error)
}
