package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/application/usecase"
)

// SessionHandler trata as sessões de trabalho dos agentes.
type SessionHandler struct {
	uc *usecase.WorkSessionUseCase
}

// NewSessionHandler constrói o handler.
func NewSessionHandler(uc *usecase.WorkSessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// End godoc
// @Summary      Terminar a sessão de trabalho ativa
// @Tags         sessions
// @Security     Bearer
// @Success      204
// @Router       /api/sessions/end [post]
func (h *SessionHandler) End(c *fiber.Ctx) error {
	if err := h.uc.End(c.Context(), GetUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Beacon godoc
// @Summary      Fim de sessão por beacon de descarga de página
// @Description  Melhor esforço: devolve sempre 204, mesmo em falha interna,
//               porque o browser já está a fechar a página.
// @Tags         sessions
// @Security     Bearer
// @Success      204
// @Router       /api/sessions/beacon [post]
func (h *SessionHandler) Beacon(c *fiber.Ctx) error {
	_ = h.uc.End(c.Context(), GetUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Active godoc
// @Summary      Sessão de trabalho ativa do agente
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.WorkSessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sessions/active [get]
func (h *SessionHandler) Active(c *fiber.Ctx) error {
	out, err := h.uc.Active(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SESSION", Message: "sem sessão de trabalho ativa"})
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estatísticas das sessões do agente
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.WorkSessionStatsResponse
// @Router       /api/sessions/stats [get]
func (h *SessionHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
