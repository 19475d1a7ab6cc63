package handler

import (
	"github.com/gofiber/fiber/v3"

	"prepmate/internal/database"
	"prepmate/internal/pkg/response"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	status := map[string]string{"database": "ok"}
	if h.db == nil || h.db.Ping(c.Context()) != nil {
		status["database"] = "unavailable"
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, status)
}
