package ports

import (
	"context"
	"errors"

	"golang.org/x/text/language"

	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

// Erros tipados do gateway de IA, mapeados dos estados HTTP 429/402 do fornecedor.
var (
	ErrAIRateLimited = errors.New("gateway de IA: limite de pedidos excedido")
	ErrAINoCredits   = errors.New("gateway de IA: créditos esgotados")
)

// LLMService define o porto de saída para o gateway de IA.
// Qualquer adaptador (gateway alojado, mock de teste) implementa este contrato;
// aplicação só conhece o porto, não a implementação (DIP).
type LLMService interface {
	// MarketAnalysis recebe as estatísticas agregadas do catálogo e devolve o
	// texto de análise de mercado no idioma pedido. O contexto deve trazer um
	// timeout para evitar bloqueios em chamadas externas.
	MarketAnalysis(ctx context.Context, stats []repository.MarketTypeStats, lang language.Tag) (string, error)
}
