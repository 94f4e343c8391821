package dto

import "github.com/shopspring/decimal"

// MarketTypeStatsResponse agregados de um tipo de produto.
type MarketTypeStatsResponse struct {
	ProductType   string          `json:"product_type"`
	ListingCount  int64           `json:"listing_count"`
	MinPriceKz    decimal.Decimal `json:"min_price_kz"`
	AvgPriceKz    decimal.Decimal `json:"avg_price_kz"`
	MaxPriceKz    decimal.Decimal `json:"max_price_kz"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// MarketStatsResponse estatísticas do catálogo ativo.
type MarketStatsResponse struct {
	Stats []MarketTypeStatsResponse `json:"stats"`
}

// MarketAnalysisResponse texto de análise gerado pelo modelo.
type MarketAnalysisResponse struct {
	Analysis string `json:"analysis"`
}
