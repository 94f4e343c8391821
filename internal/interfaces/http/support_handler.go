package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/application/usecase"
	"github.com/orbislink/agrilink-api/pkg/i18n"
)

// SupportHandler trata o formulário público de contacto.
type SupportHandler struct {
	uc *usecase.SupportUseCase
}

// NewSupportHandler constrói o handler.
func NewSupportHandler(uc *usecase.SupportUseCase) *SupportHandler {
	return &SupportHandler{uc: uc}
}

// Submit godoc
// @Summary      Enviar mensagem de suporte (público)
// @Tags         support
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupportMessageRequest  true  "name, email, message"
// @Success      201   {object}  dto.SupportMessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/support/messages [post]
func (h *SupportHandler) Submit(c *fiber.Ctx) error {
	lang := i18n.Match(c.Get("Accept-Language"))

	var in dto.SupportMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, email e message são obrigatórios"})
	}
	out, err := h.uc.Submit(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out.Message = i18n.T(lang, "support.received")
	return c.Status(fiber.StatusCreated).JSON(out)
}
