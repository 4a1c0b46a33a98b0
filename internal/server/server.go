package server

import (
	"log"
	"os"
	"path/filepath"

	"labnotebook-be/internal/bootstrap"
	"labnotebook-be/internal/config"
	"labnotebook-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	// Routes
	registerRoutes(app, container)

	// Static SPA assets, with index.html fallback for client-side routing
	registerFrontend(app, cfg.App.FrontendDistPath)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.NoteController.RegisterRoutes(api)
	c.ExperimentController.RegisterRoutes(api)
	c.ActivityController.RegisterRoutes(api)
}

func registerFrontend(app *fiber.App, distPath string) {
	if _, err := os.Stat(distPath); err != nil {
		log.Printf("[WARN] Frontend dist not found at %s, skipping static routes", distPath)
		return
	}

	app.Static("/", distPath)

	index := filepath.Join(distPath, "index.html")
	app.Get("/*", func(ctx *fiber.Ctx) error {
		return ctx.SendFile(index)
	})
}
