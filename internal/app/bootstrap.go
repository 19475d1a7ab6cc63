package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"prepmate/internal/config"
	"prepmate/internal/delivery/http/middleware"
	"prepmate/internal/delivery/http/routes"
	v1 "prepmate/internal/delivery/http/routes/v1"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, container)
	registerRoutes(f, container)

	app := &App{Fiber: f, Container: container}
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	deps := v1.Deps{
		Config:  c.Config,
		DB:      c.DB,
		Cache:   c.Cache,
		AI:      c.AI,
		Gateway: c.Gateway,
		Hub:     c.Hub,
		Logger:  c.Logger,
	}
	routes.NewRegistry(deps, c.Logger).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
