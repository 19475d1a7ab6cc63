package v1

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"prepmate/internal/config"
	"prepmate/internal/database"
	"prepmate/internal/delivery/http/handler"
	"prepmate/internal/delivery/http/middleware"
	"prepmate/internal/infrastructure/cache"
	"prepmate/internal/infrastructure/genai"
	"prepmate/internal/infrastructure/payment"
	"prepmate/internal/infrastructure/persistence/postgres"
	"prepmate/internal/pkg/jwt"
	"prepmate/internal/usecase"
	ucauth "prepmate/internal/usecase/auth"
	"prepmate/internal/ws"
)

// Deps carries the shared infrastructure the v1 routes are wired against.
type Deps struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	AI      *genai.Client
	Gateway payment.Gateway
	Hub     *ws.Hub
	Logger  *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := postgres.NewUserRepository(deps.DB)
	sessionRepo := postgres.NewSessionRepository(deps.DB)
	tierRepo := postgres.NewTierRepository(deps.DB)
	orderRepo := postgres.NewOrderRepository(deps.DB)

	notifier := ws.NewNotifier(deps.Hub)

	authUC := ucauth.NewService(userRepo, jwtSvc)
	assembler := usecase.NewAssembler(sessionRepo, deps.AI, deps.Cache, deps.Logger)
	runner := usecase.NewRunner(sessionRepo, deps.AI, notifier, deps.Logger)
	progressUC := usecase.NewProgress(sessionRepo)
	billingUC := usecase.NewBilling(
		orderRepo,
		tierRepo,
		deps.Gateway,
		notifier,
		deps.Config.Payment.PremiumPriceCents,
		deps.Config.Payment.Currency,
		deps.Logger,
	)

	authHandler := handler.NewAuthHandler(authUC)
	interviewHandler := handler.NewInterviewHandler(assembler, runner, sessionRepo, tierRepo)
	progressHandler := handler.NewProgressHandler(progressUC)
	billingHandler := handler.NewBillingHandler(billingUC)
	resumeHandler := handler.NewResumeHandler()

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	// Interviews and progress accept guests: a missing token scopes the
	// caller to the shared guest identity rather than rejecting the request.
	optional := r.Group("", authMw.OptionalMiddleware())
	interviewHandler.RegisterRoutes(optional.Group("/interviews"))
	progressHandler.RegisterRoutes(optional.Group("/progress"))
	resumeHandler.RegisterRoutes(optional.Group("/resume"))

	billingGroup := r.Group("/billing")
	protectedBilling := r.Group("/billing", authMw.Middleware())
	billingHandler.RegisterRoutes(billingGroup, protectedBilling)
}
