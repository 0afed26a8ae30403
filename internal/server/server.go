package server

import (
	"log"
	"time"

	"viewset-bot/internal/bootstrap"
	"viewset-bot/internal/config"
	"viewset-bot/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Bot API updates are small; a chat message tops out at 4096 characters.
	app := fiber.New(fiber.Config{
		AppName:      "viewset-bot",
		BodyLimit:    256 * 1024,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  2 * time.Minute,
		ErrorHandler: serverutils.ErrorHandler(container.Logger),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, OPTIONS",
	}))
	app.Use(otelfiber.Middleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) Run() error {
	log.Printf("✅ Webhook listening on %s/api/webhook/v1", s.cfg.App.BaseURL)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.HealthController.RegisterRoutes(api)
	c.WebhookController.RegisterRoutes(api)
	c.ConsoleController.RegisterRoutes(api)
}
