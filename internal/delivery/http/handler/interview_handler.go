package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"prepmate/internal/delivery/http/dto"
	"prepmate/internal/delivery/http/middleware"
	"prepmate/internal/domain/identity"
	"prepmate/internal/domain/interview"
	"prepmate/internal/domain/tier"
	"prepmate/internal/pkg/response"
	"prepmate/internal/usecase"
)

type InterviewHandler struct {
	assembler usecase.AssembleUsecase
	runner    usecase.RunnerUsecase
	sessions  interview.Repository
	tiers     tier.Repository
}

type startInterviewRequest struct {
	JobRole       string `json:"job_role"`
	InterviewType string `json:"interview_type"`
	ResumeText    string `json:"resume_text"`
}

type submitAnswerRequest struct {
	Answer string `json:"answer"`
}

func NewInterviewHandler(assembler usecase.AssembleUsecase, runner usecase.RunnerUsecase, sessions interview.Repository, tiers tier.Repository) *InterviewHandler {
	return &InterviewHandler{assembler: assembler, runner: runner, sessions: sessions, tiers: tiers}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Start)
	r.Get("/:id", h.Get)
	r.Post("/:id/answer", h.SubmitAnswer)
	r.Post("/:id/advance", h.Advance)
}

func (h *InterviewHandler) Start(c fiber.Ctx) error {
	var req startInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	id := middleware.IdentityFromCtx(c)
	currentTier, err := h.currentTier(c.Context(), id)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	s, err := h.assembler.Assemble(c.Context(), usecase.AssembleInput{
		Identity:      id,
		Tier:          currentTier,
		JobRole:       req.JobRole,
		InterviewType: interview.RoundType(req.InterviewType),
		ResumeText:    req.ResumeText,
	})
	if err != nil {
		return mapInterviewUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewSessionResponse(s))
}

func (h *InterviewHandler) Get(c fiber.Ctx) error {
	s, err := h.ownedSession(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(s))
}

func (h *InterviewHandler) SubmitAnswer(c fiber.Ctx) error {
	owned, err := h.ownedSession(c)
	if err != nil {
		return err
	}

	var req submitAnswerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	s, err := h.runner.SubmitAnswer(c.Context(), owned.ID, req.Answer)
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(s))
}

func (h *InterviewHandler) Advance(c fiber.Ctx) error {
	owned, err := h.ownedSession(c)
	if err != nil {
		return err
	}

	s, err := h.runner.Advance(c.Context(), owned.ID)
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(s))
}

// ownedSession resolves the :id path param to a session belonging to the
// caller. Another identity's session answers 404 identically to a missing
// one, so ids cannot be probed or mutated across identities.
func (h *InterviewHandler) ownedSession(c fiber.Ctx) (interview.Session, error) {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return interview.Session{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid session id", nil, err)
	}

	s, err := h.sessions.GetByID(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, interview.ErrNotFound) {
			return interview.Session{}, middleware.NewAppError(fiber.StatusNotFound, "Session not found", nil, err)
		}
		return interview.Session{}, middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	if s.Identity != middleware.IdentityFromCtx(c) {
		return interview.Session{}, middleware.NewAppError(fiber.StatusNotFound, "Session not found", nil, nil)
	}
	return s, nil
}

func (h *InterviewHandler) currentTier(ctx context.Context, id identity.Identity) (tier.Tier, error) {
	if h.tiers == nil {
		return tier.Free, nil
	}
	return h.tiers.GetTier(ctx, id)
}

func mapInterviewUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrRoundNotAllowed):
		return middleware.NewAppError(fiber.StatusForbidden, "Round type not available on your plan", nil, err)
	case errors.Is(err, usecase.ErrLimitReached):
		return middleware.NewAppError(fiber.StatusForbidden, "Daily interview limit reached", nil, err)
	case errors.Is(err, usecase.ErrGenerationFailed):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Could not generate questions for this configuration", nil, err)
	case errors.Is(err, usecase.ErrServiceUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Service temporarily unavailable, please retry", nil, err)
	case errors.Is(err, usecase.ErrAlreadyAnswered):
		return middleware.NewAppError(fiber.StatusConflict, "Current question already answered", nil, err)
	case errors.Is(err, usecase.ErrAnswerPending):
		return middleware.NewAppError(fiber.StatusConflict, "Answer the current question first", nil, err)
	case errors.Is(err, usecase.ErrSessionCompleted):
		return middleware.NewAppError(fiber.StatusConflict, "Session already completed", nil, err)
	case errors.Is(err, interview.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Session not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
