package handler

import (
	"github.com/gofiber/fiber/v3"

	"prepmate/internal/delivery/http/dto"
	"prepmate/internal/delivery/http/middleware"
	"prepmate/internal/pkg/response"
	"prepmate/internal/usecase"
)

type ProgressHandler struct {
	uc usecase.ProgressUsecase
}

func NewProgressHandler(uc usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{uc: uc}
}

func (h *ProgressHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Get)
}

func (h *ProgressHandler) Get(c fiber.Ctx) error {
	id := middleware.IdentityFromCtx(c)

	sessions, err := h.uc.CompletedSessions(c.Context(), id)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	points, err := h.uc.TimeSeries(c.Context(), id)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProgressResponse(sessions, points))
}
