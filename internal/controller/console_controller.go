package controller

import (
	"context"
	"strings"

	"viewset-bot/internal/dto"
	"viewset-bot/internal/pkg/logger"
	"viewset-bot/internal/pkg/serverutils"
	internalWS "viewset-bot/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const maxLogEntries = 200

type IConsoleController interface {
	RegisterRoutes(r fiber.Router)
	ServeWs(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

// consoleController serves the chat console: a websocket that speaks for
// the participant named in its token.
type consoleController struct {
	baseCtx   context.Context
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewConsoleController(baseCtx context.Context, hub *internalWS.Hub, jwtSecret string, log logger.ILogger) IConsoleController {
	return &consoleController{baseCtx: baseCtx, hub: hub, jwtSecret: jwtSecret, logger: log}
}

func (c *consoleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/console/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Get("/ws", c.ServeWs)
	h.Get("/status", c.Status)
	h.Get("/logs", serverutils.StaffOnly, c.Logs)
}

func claimsOf(ctx *fiber.Ctx) serverutils.ConsoleClaims {
	claims, _ := ctx.Locals("claims").(serverutils.ConsoleClaims)
	return claims
}

func (c *consoleController) ServeWs(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	claims := claimsOf(ctx)
	id := internalWS.Identity{
		ParticipantID: claims.ParticipantID,
		Username:      claims.Username,
		FirstName:     claims.FirstName,
		LanguageCode:  claims.LanguageCode,
		IsStaff:       claims.IsStaff,
	}
	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("ConsoleController", "Console session started", map[string]interface{}{"participant_id": id.ParticipantID})
		internalWS.ServeWs(c.baseCtx, c.hub, conn, id)
		c.logger.Info("ConsoleController", "Console session ended", map[string]interface{}{"participant_id": id.ParticipantID})
	})(ctx)
}

func (c *consoleController) Status(ctx *fiber.Ctx) error {
	claims := claimsOf(ctx)
	res := dto.ConsoleStatusResponse{
		ParticipantId: claims.ParticipantID,
		Connections:   c.hub.Connected(claims.ParticipantID),
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get console status", res))
}

func (c *consoleController) Logs(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	if limit > maxLogEntries {
		limit = maxLogEntries
	}
	entries, err := c.logger.Tail(strings.ToUpper(ctx.Query("level")), limit)
	if err != nil {
		return err
	}

	res := make([]dto.LogEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, dto.LogEntryResponse{
			Timestamp: e.Timestamp,
			Level:     e.Level,
			Module:    e.Module,
			Message:   e.Message,
			Details:   e.Details,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get logs", res))
}
