package server

import (
	"otakupal-be/internal/bootstrap"
	"otakupal-be/internal/config"
	"otakupal-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app  *fiber.App
	cfg  *config.Config
	deps *bootstrap.Container
}

func New(cfg *config.Config, deps *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName: "OtakuPal Backend",
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	deps.AuthController.RegisterRoutes(api)
	deps.ChatbotController.RegisterRoutes(api)

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	return &Server{
		app:  app,
		cfg:  cfg,
		deps: deps,
	}
}

func (s *Server) Run() error {
	s.deps.Logger.Info("Server", "listening", map[string]interface{}{
		"port": s.cfg.App.Port,
	})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
