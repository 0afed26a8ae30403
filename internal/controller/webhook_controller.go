package controller

import (
	"crypto/subtle"

	"viewset-bot/internal/dto"
	"viewset-bot/internal/pkg/logger"
	"viewset-bot/internal/pkg/serverutils"
	"viewset-bot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SecretHeader carries the secret configured with setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Update(ctx *fiber.Ctx) error
}

type webhookController struct {
	service service.IBotService
	secret  string
	logger  logger.ILogger
}

func NewWebhookController(service service.IBotService, secret string, log logger.ILogger) IWebhookController {
	return &webhookController{service: service, secret: secret, logger: log}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook/v1")
	h.Post("", c.Update)
}

// Update serves one update and answers with the reply as a Bot API method
// in the response body.
func (c *webhookController) Update(ctx *fiber.Ctx) error {
	if c.secret != "" && subtle.ConstantTimeCompare([]byte(ctx.Get(SecretHeader)), []byte(c.secret)) != 1 {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Invalid webhook secret"))
	}

	var req dto.TelegramUpdate
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed update")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	event, chatID, ok := req.Event()
	if !ok {
		return ctx.SendStatus(fiber.StatusOK)
	}

	resp, err := c.service.Handle(ctx.UserContext(), event)
	if err != nil {
		// Non-2xx makes the Bot API redeliver the update.
		c.logger.Warn("WebhookController", "Update served with error", map[string]interface{}{
			"update_id":      req.UpdateId,
			"participant_id": event.ParticipantID,
			"error":          err.Error(),
		})
	}
	if resp == nil {
		return ctx.SendStatus(fiber.StatusOK)
	}
	return ctx.JSON(dto.NewTelegramMethod(chatID, event, resp))
}
