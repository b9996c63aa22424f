package middleware

import (
	"errors"
	"strings"

	"github.com/global-ministries/global-connect-sub001/internal/auth"
	"github.com/global-ministries/global-connect-sub001/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
}

func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Required authentication
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"UNAUTHORIZED",
				"Token no proporcionado",
			))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"UNAUTHORIZED",
				"Formato de token inválido",
			))
		}

		claims, err := m.jwtService.ValidateAccessToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
					"TOKEN_EXPIRED",
					"Token expirado",
				))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"INVALID_TOKEN",
				"Token inválido",
			))
		}

		userID, err := claims.UserID()
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"INVALID_TOKEN",
				"Token inválido",
			))
		}

		SetUser(c, userID, claims.Role)
		return c.Next()
	}
}

// SetUser stores the authenticated actor on the request context.
func SetUser(c *fiber.Ctx, userID uuid.UUID, role string) {
	c.Locals("userID", userID)
	c.Locals("userRole", role)
}

// Get current user ID from context
func GetUserID(c *fiber.Ctx) *uuid.UUID {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole returns the role claim of the current actor, or "".
func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return role
}
