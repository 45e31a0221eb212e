package diezmos

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"negocio-backend/internal/apperror"
	"negocio-backend/internal/auth"
	"negocio-backend/internal/database"
	"negocio-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
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
	app.Get("/api/diezmos", ListDiezmosHandler())
	app.Put("/api/diezmos/:id/entrega", ToggleEntregaHandler())

	return app, &usuario
}

func TestListDiezmosConResumen(t *testing.T) {
	app, u := montarApp(t)

	require.NoError(t, database.DB.Create(&models.DiezmoMensual{
		Mes: 11, Anio: 2025, UsuarioID: u.ID,
		TotalDiezmo: decimal.RequireFromString("80.00"),
		Estado:      models.DiezmoEntregado,
	}).Error)
	require.NoError(t, database.DB.Create(&models.DiezmoMensual{
		Mes: 12, Anio: 2025, UsuarioID: u.ID,
		TotalDiezmo: decimal.RequireFromString("50.00"),
		Estado:      models.DiezmoPendiente,
	}).Error)

	req := httptest.NewRequest("GET", "/api/diezmos", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var cuerpo struct {
		Diezmos []DiezmoResponse `json:"diezmos"`
		Resumen ResumenDiezmos   `json:"resumen"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&cuerpo))

	require.Len(t, cuerpo.Diezmos, 2)
	// período más reciente primero
	assert.Equal(t, 12, cuerpo.Diezmos[0].Mes)
	assert.Equal(t, "Diciembre", cuerpo.Diezmos[0].NombreMes)

	assert.True(t, cuerpo.Resumen.TotalPendiente.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, cuerpo.Resumen.TotalEntregado.Equal(decimal.RequireFromString("80.00")))
	assert.True(t, cuerpo.Resumen.TotalGeneral.Equal(decimal.RequireFromString("130.00")))
}

func TestToggleEntrega(t *testing.T) {
	app, u := montarApp(t)

	diezmo := models.DiezmoMensual{
		Mes: 12, Anio: 2025, UsuarioID: u.ID,
		TotalDiezmo: decimal.RequireFromString("50.00"),
		Estado:      models.DiezmoPendiente,
	}
	require.NoError(t, database.DB.Create(&diezmo).Error)

	ruta := fmt.Sprintf("/api/diezmos/%d/entrega", diezmo.ID)

	// pendiente -> entregado, con fecha
	res, err := app.Test(httptest.NewRequest("PUT", ruta, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var actual models.DiezmoMensual
	require.NoError(t, database.DB.First(&actual, diezmo.ID).Error)
	assert.Equal(t, models.DiezmoEntregado, actual.Estado)
	assert.NotNil(t, actual.FechaEntrega)

	// entregado -> pendiente, la fecha se limpia
	res, err = app.Test(httptest.NewRequest("PUT", ruta, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	// struct fresco: First no limpia un puntero previo cuando la columna es NULL
	actual = models.DiezmoMensual{}
	require.NoError(t, database.DB.First(&actual, diezmo.ID).Error)
	assert.Equal(t, models.DiezmoPendiente, actual.Estado)
	assert.Nil(t, actual.FechaEntrega)
}

func TestToggleEntregaDeOtroUsuario(t *testing.T) {
	app, _ := montarApp(t)

	otro := models.Usuario{Username: "pedro", PasswordHash: "x", Nombre: "Pedro", Rol: "admin"}
	require.NoError(t, database.DB.Create(&otro).Error)
	ajeno := models.DiezmoMensual{
		Mes: 12, Anio: 2025, UsuarioID: otro.ID,
		TotalDiezmo: decimal.RequireFromString("50.00"),
		Estado:      models.DiezmoPendiente,
	}
	require.NoError(t, database.DB.Create(&ajeno).Error)

	res, err := app.Test(httptest.NewRequest("PUT",
		fmt.Sprintf("/api/diezmos/%d/entrega", ajeno.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}
