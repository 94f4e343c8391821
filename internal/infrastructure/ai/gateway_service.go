package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
	"github.com/orbislink/agrilink-api/pkg/config"
)

// Verificação em tempo de compilação de que GatewayService implementa LLMService.
var _ ports.LLMService = (*GatewayService)(nil)

// Prompts de sistema por idioma. O modelo responde em texto corrido; não há
// validação do conteúdo devolvido, é pass-through para o frontend.
var systemPrompts = map[language.Tag]string{
	language.Portuguese: `És um analista de mercados agrícolas em Angola. Recebes estatísticas agregadas
do catálogo (por tipo de produto: número de anúncios, preço mínimo/médio/máximo em Kz e quantidade total)
e escreves uma análise de mercado concisa em português: tendências de preço, tipos com maior oferta e
recomendações práticas para compradores. Máximo 300 palavras, sem markdown.`,
	language.English: `You are an agricultural market analyst for Angola. You receive aggregate catalog
statistics (per product type: listing count, min/avg/max price in Kz and total quantity) and write a
concise market analysis in English: price trends, types with the largest supply and practical
recommendations for buyers. 300 words maximum, no markdown.`,
	language.French: `Tu es un analyste des marchés agricoles en Angola. Tu reçois des statistiques
agrégées du catalogue (par type de produit : nombre d'annonces, prix min/moyen/max en Kz et quantité
totale) et tu rédiges une analyse de marché concise en français : tendances de prix, types les plus
offerts et recommandations pratiques pour les acheteurs. 300 mots maximum, sans markdown.`,
}

// GatewayService adaptador que implementa LLMService sobre um gateway de IA
// compatível com a API chat/completions. Usa net/http; não requer SDK.
type GatewayService struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

// NewGatewayService constrói o adaptador.
// Se a API key estiver vazia as chamadas devolvem erro descritivo em vez de panic.
func NewGatewayService(cfg config.AIConfig) *GatewayService {
	return &GatewayService{
		cfg: cfg,
		httpClient: &http.Client{
			// Timeout de rede de 25 s; o caso de uso impõe ainda um context.WithTimeout de 10 s.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estruturas internas do protocolo chat/completions ────────────────────────

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementação do porto ───────────────────────────────────────────────────

// MarketAnalysis envia as estatísticas agregadas ao gateway e devolve o texto
// de análise. HTTP 429 e 402 são traduzidos para os erros tipados do porto.
func (s *GatewayService) MarketAnalysis(ctx context.Context, stats []repository.MarketTypeStats, lang language.Tag) (string, error) {
	if s.cfg.APIKey == "" {
		return "", fmt.Errorf("AI: AI_GATEWAY_API_KEY não configurado")
	}
	if s.cfg.GatewayURL == "" {
		return "", fmt.Errorf("AI: AI_GATEWAY_URL não configurado")
	}

	system, ok := systemPrompts[lang]
	if !ok {
		system = systemPrompts[language.Portuguese]
	}

	payload := chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: formatStats(stats)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: criar HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout ou cancelamento: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: chamada HTTP falhada: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("AI: ler resposta: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// segue
	case http.StatusTooManyRequests:
		return "", ports.ErrAIRateLimited
	case http.StatusPaymentRequired:
		return "", ports.ErrAINoCredits
	default:
		var errResp chatResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: gateway HTTP %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: gateway HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(rawBody, &chatResp); err != nil {
		return "", fmt.Errorf("AI: desserializar resposta: %w", err)
	}
	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("AI: o gateway devolveu resposta vazia")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// formatStats serializa as estatísticas numa tabela de texto simples para o prompt.
func formatStats(stats []repository.MarketTypeStats) string {
	if len(stats) == 0 {
		return "Catálogo sem anúncios ativos."
	}
	var b strings.Builder
	b.WriteString("Estatísticas do catálogo:\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "- %s: %d anúncios, preço min %s / médio %s / max %s Kz, quantidade total %s\n",
			s.ProductType, s.ListingCount,
			s.MinPriceKz.StringFixed(2), s.AvgPriceKz.StringFixed(2), s.MaxPriceKz.StringFixed(2),
			s.TotalQuantity.String())
	}
	return b.String()
}
