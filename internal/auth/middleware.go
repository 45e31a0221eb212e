package auth

import (
	"fmt"
	"strings"

	"negocio-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUsuarioIDKey = "usuario_id"
	CtxUsernameKey  = "username"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Falta el header Authorization")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "El formato de Authorization debe ser 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de firma inválido")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido o expirado")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "No se pudo interpretar el token")
		}

		c.Locals(CtxUsuarioIDKey, claims.UsuarioID)
		c.Locals(CtxUsernameKey, claims.Username)

		return c.Next()
	}
}

// UsuarioID devuelve el id del usuario autenticado. Toda consulta de los
// módulos se limita a los registros de este usuario; el id viaja siempre
// como parámetro explícito, nunca como estado ambiente.
func UsuarioID(c *fiber.Ctx) (uint, error) {
	val := c.Locals(CtxUsuarioIDKey)
	id, ok := val.(uint)
	if !ok || id == 0 {
		return 0, fiber.NewError(fiber.StatusForbidden, "No se pudo obtener la información del usuario")
	}
	return id, nil
}
