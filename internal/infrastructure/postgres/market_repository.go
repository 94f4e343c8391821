package postgres

import (
	"context"
	"fmt"

	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

var _ repository.MarketRepository = (*MarketRepo)(nil)

// MarketRepo consultas de leitura para estatísticas de mercado.
type MarketRepo struct {
	q Querier
}

// NewMarketRepository constrói o adaptador de estatísticas.
func NewMarketRepository(q Querier) *MarketRepo {
	return &MarketRepo{q: q}
}

// StatsByType agrega o catálogo por tipo de produto: contagem de anúncios,
// preço mínimo/médio/máximo e quantidade total disponível.
// Usa COALESCE para devolver zeros num catálogo vazio.
func (r *MarketRepo) StatsByType(ctx context.Context) ([]repository.MarketTypeStats, error) {
	const query = `
	SELECT
	    type                                  AS product_type,
	    COUNT(*)                              AS listing_count,
	    COALESCE(MIN(price_kz), 0)            AS min_price,
	    COALESCE(ROUND(AVG(price_kz), 2), 0)  AS avg_price,
	    COALESCE(MAX(price_kz), 0)            AS max_price,
	    COALESCE(SUM(quantity), 0)            AS total_quantity
	FROM products
	GROUP BY type
	ORDER BY listing_count DESC, type`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("market.StatsByType: %w", err)
	}
	defer rows.Close()

	var results []repository.MarketTypeStats
	for rows.Next() {
		var row repository.MarketTypeStats
		if err := rows.Scan(
			&row.ProductType,
			&row.ListingCount,
			&row.MinPriceKz,
			&row.AvgPriceKz,
			&row.MaxPriceKz,
			&row.TotalQuantity,
		); err != nil {
			return nil, fmt.Errorf("market.StatsByType scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
