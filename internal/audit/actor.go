package audit

import (
	"negocio-backend/internal/auth"
	"negocio-backend/internal/database"
	"negocio-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Actor devuelve el id y el nombre del usuario autenticado, para
// denormalizarlo en la bitácora.
func Actor(c *fiber.Ctx) (uint, string, error) {
	usuarioID, err := auth.UsuarioID(c)
	if err != nil {
		return 0, "", err
	}

	var usuario models.Usuario
	if err := database.DB.First(&usuario, usuarioID).Error; err != nil {
		return usuarioID, "", nil
	}
	return usuarioID, usuario.Nombre, nil
}
