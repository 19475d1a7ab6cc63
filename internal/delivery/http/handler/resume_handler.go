package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v3"

	"prepmate/internal/delivery/http/middleware"
	"prepmate/internal/pkg/resumepdf"
	"prepmate/internal/pkg/response"
)

type ResumeHandler struct{}

func NewResumeHandler() *ResumeHandler {
	return &ResumeHandler{}
}

func (h *ResumeHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/extract", h.Extract)
}

// Extract accepts a multipart PDF upload and returns its plain text, which the
// client passes back verbatim when starting a resume round.
func (h *ResumeHandler) Extract(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file upload", nil, err)
	}
	if fh.Size > resumepdf.MaxBytes {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume exceeds the 5MB limit", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file upload", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, resumepdf.MaxBytes+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file upload", nil, err)
	}

	text, err := resumepdf.Extract(data)
	if err != nil {
		if errors.Is(err, resumepdf.ErrNoText) {
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No extractable text in PDF", nil, err)
		}
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Could not parse PDF", nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"text": text})
}
