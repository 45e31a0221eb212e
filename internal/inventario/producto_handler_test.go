package inventario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

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

// montarApp levanta la app con la base en memoria y un usuario ya
// autenticado, sin pasar por el middleware JWT.
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
	app.Get("/api/productos", ListProductosHandler())
	app.Get("/api/productos/:id", GetProductoHandler())
	app.Post("/api/productos", CreateProductoHandler())
	app.Put("/api/productos/:id", UpdateProductoHandler())
	app.Delete("/api/productos/:id", DeleteProductoHandler())

	return app, &usuario
}

func hacerJSON(t *testing.T, app *fiber.App, metodo, ruta string, cuerpo interface{}) (int, map[string]interface{}) {
	t.Helper()
	var body bytes.Buffer
	if cuerpo != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(cuerpo))
	}
	req := httptest.NewRequest(metodo, ruta, &body)
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	var decodificado map[string]interface{}
	json.NewDecoder(res.Body).Decode(&decodificado)
	return res.StatusCode, decodificado
}

func TestCrearYListarProductos(t *testing.T) {
	app, _ := montarApp(t)

	status, creado := hacerJSON(t, app, "POST", "/api/productos", fiber.Map{
		"nombre":         "Aceite de coco",
		"cantidad":       10,
		"costo_unitario": "5.00",
		"precio_venta":   "8.00",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "disponible", creado["estado"])
	assert.EqualValues(t, 5, creado["stock_minimo"], "mínimo por defecto")

	status, lista := hacerJSON(t, app, "GET", "/api/productos", nil)
	require.Equal(t, fiber.StatusOK, status)
	productos := lista["productos"].([]interface{})
	assert.Len(t, productos, 1)
	valor, err := decimal.NewFromString(fmt.Sprint(lista["valor_total"]))
	require.NoError(t, err)
	assert.True(t, valor.Equal(decimal.RequireFromString("50.00")), "valor: %s", valor)
}

func TestCrearProductoAgotado(t *testing.T) {
	app, _ := montarApp(t)

	status, creado := hacerJSON(t, app, "POST", "/api/productos", fiber.Map{
		"nombre":         "Miel",
		"cantidad":       0,
		"costo_unitario": "3.00",
		"precio_venta":   "6.00",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "agotado", creado["estado"])
}

func TestListarSoloDisponibles(t *testing.T) {
	app, u := montarApp(t)

	require.NoError(t, database.DB.Create(&models.Producto{
		UsuarioID: u.ID, Nombre: "Con stock", Cantidad: 4,
		CostoUnitario: decimal.RequireFromString("1.00"),
		PrecioVenta:   decimal.RequireFromString("2.00"),
		StockMinimo:   5, Estado: models.ProductoBajo,
	}).Error)
	require.NoError(t, database.DB.Create(&models.Producto{
		UsuarioID: u.ID, Nombre: "Agotado", Cantidad: 0,
		CostoUnitario: decimal.RequireFromString("1.00"),
		PrecioVenta:   decimal.RequireFromString("2.00"),
		StockMinimo:   5, Estado: models.ProductoAgotado,
	}).Error)

	status, lista := hacerJSON(t, app, "GET", "/api/productos?disponibles=true", nil)
	require.Equal(t, fiber.StatusOK, status)
	productos := lista["productos"].([]interface{})
	require.Len(t, productos, 1)
	primero := productos[0].(map[string]interface{})
	assert.Equal(t, "Con stock", primero["nombre"])
}

func TestActualizarProductoRecalculaEstado(t *testing.T) {
	app, u := montarApp(t)

	producto := models.Producto{
		UsuarioID: u.ID, Nombre: "Jabón", Cantidad: 10,
		CostoUnitario: decimal.RequireFromString("1.00"),
		PrecioVenta:   decimal.RequireFromString("2.00"),
		StockMinimo:   5, Estado: models.ProductoDisponible,
	}
	require.NoError(t, database.DB.Create(&producto).Error)

	status, actualizado := hacerJSON(t, app, "PUT",
		fmt.Sprintf("/api/productos/%d", producto.ID),
		fiber.Map{"cantidad": 2})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "bajo", actualizado["estado"])

	// subir el mínimo por encima del stock también lo marca bajo
	status, actualizado = hacerJSON(t, app, "PUT",
		fmt.Sprintf("/api/productos/%d", producto.ID),
		fiber.Map{"cantidad": 10, "stock_minimo": 12})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "bajo", actualizado["estado"])
}

func TestEliminarProductoConVentas(t *testing.T) {
	app, u := montarApp(t)

	producto := models.Producto{
		UsuarioID: u.ID, Nombre: "Café", Cantidad: 10,
		CostoUnitario: decimal.RequireFromString("2.00"),
		PrecioVenta:   decimal.RequireFromString("4.00"),
		StockMinimo:   5, Estado: models.ProductoDisponible,
	}
	require.NoError(t, database.DB.Create(&producto).Error)
	require.NoError(t, database.DB.Create(&models.Venta{
		UsuarioID: u.ID, ProductoID: producto.ID, ClienteNombre: "Juan",
		Cantidad: 1,
		PrecioUnitario: decimal.RequireFromString("4.00"),
		TotalVendido:   decimal.RequireFromString("4.00"),
		CostoTotal:     decimal.RequireFromString("2.00"),
		Ganancia:       decimal.RequireFromString("2.00"),
		Diezmo:         decimal.RequireFromString("0.40"),
		TipoVenta:      models.VentaContado, EstadoPago: models.PagoCompletado,
		FechaVenta: time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC),
	}).Error)

	status, cuerpo := hacerJSON(t, app, "DELETE",
		fmt.Sprintf("/api/productos/%d", producto.ID), nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, apperror.CodigoConflicto, cuerpo["codigo"])

	// el producto sigue existiendo
	var cuenta int64
	database.DB.Model(&models.Producto{}).Where("id = ?", producto.ID).Count(&cuenta)
	assert.EqualValues(t, 1, cuenta)
}

func TestModoDegradadoDevuelve503(t *testing.T) {
	// sin conexión al arrancar, la guardia corta antes de que el handler
	// toque un DB nulo
	database.DB = nil

	app := fiber.New()
	app.Use(database.Disponible())
	app.Get("/api/productos", ListProductosHandler())

	req := httptest.NewRequest("GET", "/api/productos", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, res.StatusCode)
}

func TestProductoDeOtroUsuarioNoEsVisible(t *testing.T) {
	app, _ := montarApp(t)

	otro := models.Usuario{Username: "pedro", PasswordHash: "x", Nombre: "Pedro", Rol: "admin"}
	require.NoError(t, database.DB.Create(&otro).Error)
	ajeno := models.Producto{
		UsuarioID: otro.ID, Nombre: "Ajeno", Cantidad: 1,
		CostoUnitario: decimal.RequireFromString("1.00"),
		PrecioVenta:   decimal.RequireFromString("2.00"),
		StockMinimo:   5, Estado: models.ProductoBajo,
	}
	require.NoError(t, database.DB.Create(&ajeno).Error)

	status, cuerpo := hacerJSON(t, app, "GET",
		fmt.Sprintf("/api/productos/%d", ajeno.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, apperror.CodigoNoEncontrado, cuerpo["codigo"])
}
