package routes

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"prepmate/internal/delivery/http/handler"
	v1 "prepmate/internal/delivery/http/routes/v1"
	"prepmate/internal/ws"
)

type Registry struct {
	deps   v1.Deps
	health *handler.HealthHandler
	wsh    *ws.Handler
}

func NewRegistry(deps v1.Deps, logger *log.Logger) *Registry {
	return &Registry{
		deps:   deps,
		health: handler.NewHealthHandler(deps.DB),
		wsh:    ws.NewHandler(deps.Hub, logger),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", r.health.Health)
	app.Get("/ws", r.wsh.HandleEventsWS)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.deps)
}
