package usecase

import (
	"context"
	"time"

	"golang.org/x/text/language"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

// Tempo máximo concedido à chamada ao gateway de IA.
const analysisTimeout = 10 * time.Second

// MarketUseCase estatísticas do catálogo e análise de mercado por IA.
type MarketUseCase struct {
	repo repository.MarketRepository
	llm  ports.LLMService
}

// NewMarketUseCase constrói o caso de uso.
func NewMarketUseCase(repo repository.MarketRepository, llm ports.LLMService) *MarketUseCase {
	return &MarketUseCase{repo: repo, llm: llm}
}

// Stats devolve os agregados de preço por tipo de produto do catálogo ativo.
func (uc *MarketUseCase) Stats(ctx context.Context) (*dto.MarketStatsResponse, error) {
	stats, err := uc.repo.StatsByType(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MarketTypeStatsResponse, 0, len(stats))
	for _, s := range stats {
		items = append(items, dto.MarketTypeStatsResponse{
			ProductType:   s.ProductType,
			ListingCount:  s.ListingCount,
			MinPriceKz:    s.MinPriceKz,
			AvgPriceKz:    s.AvgPriceKz,
			MaxPriceKz:    s.MaxPriceKz,
			TotalQuantity: s.TotalQuantity,
		})
	}
	return &dto.MarketStatsResponse{Stats: items}, nil
}

// Analysis carrega os agregados e pede o texto ao gateway no idioma pedido.
// Erros tipados do porto (rate limit, créditos) sobem intactos para o handler.
func (uc *MarketUseCase) Analysis(ctx context.Context, lang language.Tag) (*dto.MarketAnalysisResponse, error) {
	stats, err := uc.repo.StatsByType(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	text, err := uc.llm.MarketAnalysis(ctx, stats, lang)
	if err != nil {
		return nil, err
	}
	return &dto.MarketAnalysisResponse{Analysis: text}, nil
}
