package database

import "github.com/gofiber/fiber/v2"

// Disponible corta la petición con 503 mientras el servidor corre en modo
// degradado (arrancó sin conexión a la base de datos). Así ninguna ruta
// llega a tocar un DB nulo.
func Disponible() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if DB == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Base de datos no disponible")
		}
		return c.Next()
	}
}
