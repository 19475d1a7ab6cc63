package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"prepmate/internal/domain/identity"
	"prepmate/internal/pkg/jwt"
)

const (
	CtxUserIDKey   = "user_id"
	CtxEmailKey    = "email"
	CtxIdentityKey = "identity"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware rejects requests without a valid access token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.validate(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

// OptionalMiddleware resolves the caller's identity when a token is present
// and falls back to the guest sentinel otherwise. Interview endpoints use
// this: guests may interview, scoped to the shared guest daily limit.
func (m *AuthMiddleware) OptionalMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			c.Locals(CtxIdentityKey, identity.Identity(identity.GuestID))
			return c.Next()
		}

		claims, err := m.validate(token)
		if err != nil {
			// A presented-but-bad token is rejected rather than downgraded
			// to guest, so expired sessions surface to the client.
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

func (m *AuthMiddleware) validate(token string) (jwt.Claims, error) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return jwt.Claims{}, err
	}
	if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
		return jwt.Claims{}, jwt.ErrTokenInvalid
	}
	return claims, nil
}

func setIdentity(c fiber.Ctx, claims jwt.Claims) {
	c.Locals(CtxUserIDKey, claims.UserID)
	c.Locals(CtxEmailKey, claims.Email)
	c.Locals(CtxIdentityKey, identity.Identity(claims.UserID.String()))
}

// IdentityFromCtx returns the resolved identity, defaulting to guest.
func IdentityFromCtx(c fiber.Ctx) identity.Identity {
	if id, ok := c.Locals(CtxIdentityKey).(identity.Identity); ok {
		return id
	}
	return identity.Identity(identity.GuestID)
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
