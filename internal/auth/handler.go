package auth

import (
	"strings"

	"negocio-backend/internal/config"
	"negocio-backend/internal/database"
	"negocio-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegistrarAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/registrar-admin
// Solo funciona mientras no exista ningún usuario; después el alta queda
// bloqueada.
func RegistrarAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegistrarAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))

		if body.Username == "" || body.Password == "" || body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username, password y nombre son obligatorios")
		}

		var count int64
		database.DB.Model(&models.Usuario{}).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Ya existe un usuario administrador")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo procesar la contraseña")
		}

		usuario := models.Usuario{
			Username:     body.Username,
			PasswordHash: string(hash),
			Nombre:       body.Nombre,
			Rol:          "admin",
		}

		if err := database.DB.Create(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el usuario")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       usuario.ID,
			"username": usuario.Username,
			"nombre":   usuario.Nombre,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))

		var usuario models.Usuario
		if err := database.DB.Where("username = ?", body.Username).First(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuario o contraseña incorrectos")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuario o contraseña incorrectos")
		}

		token, err := GenerateToken(cfg.JWTSecret, &usuario)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"usuario": fiber.Map{
				"id":       usuario.ID,
				"username": usuario.Username,
				"nombre":   usuario.Nombre,
				"rol":      usuario.Rol,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := UsuarioID(c)
		if err != nil {
			return err
		}

		var usuario models.Usuario
		if err := database.DB.First(&usuario, usuarioID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Usuario no encontrado")
		}

		return c.JSON(fiber.Map{
			"id":       usuario.ID,
			"username": usuario.Username,
			"nombre":   usuario.Nombre,
			"rol":      usuario.Rol,
		})
	}
}
