package gastos

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"negocio-backend/internal/apperror"
	"negocio-backend/internal/auth"
	"negocio-backend/internal/database"
	"negocio-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func montarApp(t *testing.T) (*fiber.App, *models.Usuario) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	usuario := models.Usuario{Username: "maria", PasswordHash: "x", Nombre: "María", Rol: "admin"}
	require.NoError(t, db.Create(&usuario).Error)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := err.(*apperror.AppError); ok {
				return c.Status(appErr.HTTPStatus).JSON(appErr)
			}
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUsuarioIDKey, usuario.ID)
		c.Locals(auth.CtxUsernameKey, usuario.Username)
		return c.Next()
	})
	app.Post("/api/gastos", CreateGastoHandler())

	return app, &usuario
}

func postGasto(t *testing.T, app *fiber.App, cuerpo fiber.Map) (int, map[string]interface{}) {
	t.Helper()
	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(cuerpo))
	req := httptest.NewRequest("POST", "/api/gastos", &body)
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	var decodificado map[string]interface{}
	json.NewDecoder(res.Body).Decode(&decodificado)
	return res.StatusCode, decodificado
}

func TestCrearGastoNormalizaTexto(t *testing.T) {
	app, u := montarApp(t)

	status, _ := postGasto(t, app, fiber.Map{
		"fecha":       "2025-12-09",
		"categoria":   "  Luz  ",
		"descripcion": "  Factura mensual  ",
		"monto":       "100.00",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var gasto models.Gasto
	require.NoError(t, database.DB.Where("usuario_id = ?", u.ID).First(&gasto).Error)
	assert.Equal(t, "Luz", gasto.Categoria)
	assert.Equal(t, "Factura mensual", gasto.Descripcion)
}

func TestCrearGastoCategoriaEnBlanco(t *testing.T) {
	app, _ := montarApp(t)

	status, cuerpo := postGasto(t, app, fiber.Map{
		"fecha":     "2025-12-09",
		"categoria": "   ",
		"monto":     "100.00",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, apperror.CodigoValidacion, cuerpo["codigo"])

	var cuenta int64
	database.DB.Model(&models.Gasto{}).Count(&cuenta)
	assert.EqualValues(t, 0, cuenta)
}
