package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/application/usecase"
)

// PushHandler trata subscrições web push e o envio administrativo.
type PushHandler struct {
	uc *usecase.PushUseCase
}

// NewPushHandler constrói o handler.
func NewPushHandler(uc *usecase.PushUseCase) *PushHandler {
	return &PushHandler{uc: uc}
}

// VAPIDKey godoc
// @Summary      Chave pública VAPID para o frontend subscrever
// @Tags         push
// @Produce      json
// @Success      200   {object}  dto.VAPIDKeyResponse
// @Router       /api/push/vapid-key [get]
func (h *PushHandler) VAPIDKey(c *fiber.Ctx) error {
	return c.JSON(h.uc.VAPIDPublicKey())
}

// Subscribe godoc
// @Summary      Registar subscrição push do browser (idempotente)
// @Tags         push
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.SubscribeRequest  true  "endpoint e chaves do PushManager"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/push/subscriptions [post]
func (h *PushHandler) Subscribe(c *fiber.Ctx) error {
	var in dto.SubscribeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Endpoint == "" || in.Keys.P256dh == "" || in.Keys.Auth == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "endpoint e keys (p256dh, auth) são obrigatórios"})
	}
	if err := h.uc.Subscribe(c.Context(), GetUserID(c), in); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Unsubscribe godoc
// @Summary      Remover subscrição push
// @Tags         push
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.UnsubscribeRequest  true  "endpoint"
// @Success      204
// @Router       /api/push/subscriptions [delete]
func (h *PushHandler) Unsubscribe(c *fiber.Ctx) error {
	var in dto.UnsubscribeRequest
	if err := c.BodyParser(&in); err != nil || in.Endpoint == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "endpoint obrigatório"})
	}
	if err := h.uc.Unsubscribe(c.Context(), GetUserID(c), in.Endpoint); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Send godoc
// @Summary      Enviar notificação push a um utilizador (admin)
// @Description  Fan-out paralelo a todas as subscrições; endpoints mortos
//               (404/410) são removidos. Nenhuma falha individual aborta o resto.
// @Tags         push
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendPushRequest  true  "user_id, title, body"
// @Success      200   {object}  dto.PushDeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/push/send [post]
func (h *PushHandler) Send(c *fiber.Ctx) error {
	var in dto.SendPushRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.UserID == "" || in.Title == "" || in.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_id, title e body são obrigatórios"})
	}
	out, err := h.uc.Send(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	RecordPushDeliveries(out.Sent, out.Failed, out.Removed)
	return c.JSON(out)
}
