package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/internal/application/usecase"
	"github.com/orbislink/agrilink-api/pkg/i18n"
)

// MarketHandler trata estatísticas do catálogo e a análise de mercado por IA.
type MarketHandler struct {
	uc *usecase.MarketUseCase
}

// NewMarketHandler constrói o handler.
func NewMarketHandler(uc *usecase.MarketUseCase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// Stats godoc
// @Summary      Estatísticas de preço por tipo de produto
// @Tags         market
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.MarketStatsResponse
// @Router       /api/market/stats [get]
func (h *MarketHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Analysis godoc
// @Summary      Análise de mercado gerada por IA
// @Description  O idioma segue o header Accept-Language (pt, en, fr).
//               Limite de rate do gateway → 429; créditos esgotados → 402.
//               Timeout interno de 10 s.
// @Tags         market
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.MarketAnalysisResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/market/analysis [post]
func (h *MarketHandler) Analysis(c *fiber.Ctx) error {
	lang := i18n.Match(c.Get("Accept-Language"))

	out, err := h.uc.Analysis(c.Context(), lang)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrAIRateLimited):
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "AI_RATE_LIMITED", Message: "o serviço de IA está sobrecarregado; tente mais tarde"})
		case errors.Is(err, ports.ErrAINoCredits):
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{Code: "AI_CREDITS", Message: "créditos de IA esgotados"})
		case isTimeout(err):
			return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: "o serviço de IA demorou demasiado; tente de novo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// isTimeout deteta erros de timeout/cancelamento de contexto pela mensagem.
func isTimeout(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "cancelamento")
}
