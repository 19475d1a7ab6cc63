package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"prepmate/internal/delivery/http/middleware"
	"prepmate/internal/domain/tier"
	"prepmate/internal/pkg/response"
	"prepmate/internal/usecase"
)

type BillingHandler struct {
	uc usecase.BillingUsecase
}

func NewBillingHandler(uc usecase.BillingUsecase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

func (h *BillingHandler) RegisterRoutes(public fiber.Router, protected fiber.Router) {
	if public != nil {
		public.Get("/plans", h.Plans)
		public.Get("/verify", h.Verify)
	}
	if protected != nil {
		protected.Post("/orders", h.CreateOrder)
	}
}

// Plans describes the two tiers so clients can render pricing without
// hardcoding entitlements.
func (h *BillingHandler) Plans(c fiber.Ctx) error {
	plans := make([]map[string]any, 0, 2)
	for _, t := range []tier.Tier{tier.Free, tier.Premium} {
		e := tier.EntitlementsFor(t)
		plans = append(plans, map[string]any{
			"tier":                string(t),
			"daily_limit":         e.DailyLimit,
			"questions_per_round": e.QuestionsPerRound,
			"round_types":         e.AllowedRoundTypes,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, plans)
}

func (h *BillingHandler) CreateOrder(c fiber.Ctx) error {
	id := middleware.IdentityFromCtx(c)

	res, err := h.uc.CreateOrder(c.Context(), id)
	if err != nil {
		return mapBillingUsecaseError(err)
	}

	data := map[string]any{
		"order_id":     res.Order.GatewayOrderID,
		"amount_cents": res.Order.AmountCents,
		"currency":     res.Order.Currency,
		"payment_link": res.PaymentLink,
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, data)
}

// Verify is the redirect target after checkout: it asks the gateway for the
// order's payment state and upgrades the tier when paid.
func (h *BillingHandler) Verify(c fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Query("order_id"))
	if orderID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing order_id", nil, nil)
	}

	o, err := h.uc.VerifyAndUpgrade(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, usecase.ErrPaymentPending) {
			data := map[string]any{"order_id": o.GatewayOrderID, "status": string(o.Status)}
			return response.Success(c, fiber.StatusOK, "payment not completed", data)
		}
		return mapBillingUsecaseError(err)
	}

	data := map[string]any{"order_id": o.GatewayOrderID, "status": string(o.Status), "tier": string(tier.Premium)}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func mapBillingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Sign in to upgrade", nil, err)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Order not found", nil, err)
	case errors.Is(err, usecase.ErrServiceUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Payment provider unavailable, please retry", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
