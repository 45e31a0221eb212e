package main

import (
	"errors"
	"log"
	"strings"

	"negocio-backend/internal/apperror"
	"negocio-backend/internal/audit"
	"negocio-backend/internal/auth"
	"negocio-backend/internal/config"
	"negocio-backend/internal/configuracion"
	"negocio-backend/internal/dashboard"
	"negocio-backend/internal/database"
	"negocio-backend/internal/diezmos"
	"negocio-backend/internal/gastos"
	"negocio-backend/internal/inventario"
	"negocio-backend/internal/logger"
	"negocio-backend/internal/reportes"
	"negocio-backend/internal/ventas"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(cfg); err != nil {
		log.Fatal(err)
	}
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				return c.Status(appErr.HTTPStatus).JSON(fiber.Map{
					"codigo":  appErr.Codigo,
					"mensaje": appErr.Mensaje,
				})
			}
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.L().Error("error inesperado", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	app.Use(recover.New())

	// CORS origins: lista separada por comas
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Use(logger.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		estado := "ok"
		baseDatos := "conectada"
		if !database.Healthy() {
			estado = "degradado"
			baseDatos = "sin conexión"
		}
		return c.JSON(fiber.Map{
			"estado":     estado,
			"base_datos": baseDatos,
		})
	})

	api := app.Group("/api")

	// En modo degradado toda la API responde 503; solo /health queda fuera
	api.Use(database.Disponible())

	// Auth público
	api.Post("/auth/registrar-admin", auth.RegistrarAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Rutas protegidas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Inventario
	protected.Get("/productos", inventario.ListProductosHandler())
	protected.Get("/productos/:id", inventario.GetProductoHandler())
	protected.Post("/productos", inventario.CreateProductoHandler())
	protected.Put("/productos/:id", inventario.UpdateProductoHandler())
	protected.Delete("/productos/:id", inventario.DeleteProductoHandler())

	// Ventas y pagos
	protected.Get("/ventas", ventas.ListVentasHandler())
	protected.Post("/ventas", ventas.CreateVentaHandler())
	protected.Get("/ventas/:id/pagos", ventas.ListPagosHandler())
	protected.Post("/ventas/:id/pagos", ventas.CreatePagoHandler())
	protected.Get("/cuentas-por-cobrar", ventas.CuentasPorCobrarHandler())

	// Diezmos
	protected.Get("/diezmos", diezmos.ListDiezmosHandler())
	protected.Put("/diezmos/:id/entrega", diezmos.ToggleEntregaHandler())

	// Gastos
	protected.Get("/gastos", gastos.ListGastosHandler())
	protected.Post("/gastos", gastos.CreateGastoHandler())
	protected.Delete("/gastos/:id", gastos.DeleteGastoHandler())

	// Reportes Excel
	protected.Get("/reportes/ventas", reportes.ReporteVentasHandler())
	protected.Get("/reportes/gastos", reportes.ReporteGastosHandler())

	// Dashboard y estadísticas
	protected.Get("/dashboard", dashboard.ResumenHandler())
	protected.Get("/estadisticas", dashboard.EstadisticasHandler())

	// Configuración de moneda
	protected.Get("/configuracion", configuracion.GetConfiguracionHandler())
	protected.Put("/configuracion", configuracion.UpdateConfiguracionHandler())

	// Bitácora
	protected.Get("/bitacora", audit.ListBitacoraHandler())

	logger.L().Info("servidor escuchando", zap.String("puerto", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.L().Fatal("el servidor se detuvo", zap.Error(err))
	}
}
