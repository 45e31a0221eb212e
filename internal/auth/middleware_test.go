package auth

import (
	"net/http/httptest"
	"testing"

	"negocio-backend/internal/config"
	"negocio-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appProtegida(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(JWTMiddleware(cfg))
	app.Get("/quien", func(c *fiber.Ctx) error {
		id, err := UsuarioID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"usuario_id": id})
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secreto-de-prueba-con-largo-suficiente"}
	app := appProtegida(cfg)

	usuario := &models.Usuario{Username: "maria", Nombre: "María", Rol: "admin"}
	usuario.ID = 7
	token, err := GenerateToken(cfg.JWTSecret, usuario)
	require.NoError(t, err)

	t.Run("token valido", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/quien", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
	})

	t.Run("sin header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/quien", nil)
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("formato incorrecto", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/quien", nil)
		req.Header.Set("Authorization", token)
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("firmado con otro secreto", func(t *testing.T) {
		otro, err := GenerateToken("otro-secreto-cualquiera-igual-de-largo", usuario)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/quien", nil)
		req.Header.Set("Authorization", "Bearer "+otro)
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})
}
