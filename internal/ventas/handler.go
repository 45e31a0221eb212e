package ventas

import (
	"fmt"
	"time"

	"negocio-backend/internal/audit"
	"negocio-backend/internal/auth"
	"negocio-backend/internal/database"
	"negocio-backend/internal/logger"
	"negocio-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateVentaRequest struct {
	ProductoID      uint   `json:"producto_id"`
	ClienteNombre   string `json:"cliente_nombre"`
	ClienteTelefono string `json:"cliente_telefono"`
	Cantidad        int    `json:"cantidad"`
	TipoVenta       string `json:"tipo_venta"`  // "contado" o "credito"
	FechaVenta      string `json:"fecha_venta"` // "2025-12-09"
}

type VentaResponse struct {
	ID              uint            `json:"id"`
	ProductoID      uint            `json:"producto_id"`
	ProductoNombre  string          `json:"producto_nombre"`
	ClienteNombre   string          `json:"cliente_nombre"`
	ClienteTelefono string          `json:"cliente_telefono"`
	Cantidad        int             `json:"cantidad"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario"`
	TotalVendido    decimal.Decimal `json:"total_vendido"`
	CostoTotal      decimal.Decimal `json:"costo_total"`
	Ganancia        decimal.Decimal `json:"ganancia"`
	Diezmo          decimal.Decimal `json:"diezmo"`
	TipoVenta       string          `json:"tipo_venta"`
	EstadoPago      string          `json:"estado_pago"`
	FechaVenta      string          `json:"fecha_venta"`
}

type VentasTotales struct {
	TotalVendido  decimal.Decimal `json:"total_vendido"`
	TotalGanancia decimal.Decimal `json:"total_ganancia"`
	TotalDiezmo   decimal.Decimal `json:"total_diezmo"`
}

type ListVentasResponse struct {
	Ventas  []VentaResponse `json:"ventas"`
	Totales VentasTotales   `json:"totales"`
}

func toVentaResponse(v *models.Venta, productoNombre string) VentaResponse {
	return VentaResponse{
		ID:              v.ID,
		ProductoID:      v.ProductoID,
		ProductoNombre:  productoNombre,
		ClienteNombre:   v.ClienteNombre,
		ClienteTelefono: v.ClienteTelefono,
		Cantidad:        v.Cantidad,
		PrecioUnitario:  v.PrecioUnitario,
		TotalVendido:    v.TotalVendido,
		CostoTotal:      v.CostoTotal,
		Ganancia:        v.Ganancia,
		Diezmo:          v.Diezmo,
		TipoVenta:       string(v.TipoVenta),
		EstadoPago:      string(v.EstadoPago),
		FechaVenta:      v.FechaVenta.Format("2006-01-02"),
	}
}

// GET /api/ventas
func ListVentasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		var ventas []models.Venta
		if err := database.DB.Preload("Producto").
			Where("usuario_id = ?", usuarioID).
			Order("fecha_venta desc, id desc").
			Find(&ventas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar las ventas")
		}

		res := ListVentasResponse{
			Ventas: make([]VentaResponse, 0, len(ventas)),
			Totales: VentasTotales{
				TotalVendido:  decimal.Zero,
				TotalGanancia: decimal.Zero,
				TotalDiezmo:   decimal.Zero,
			},
		}
		for i := range ventas {
			v := &ventas[i]
			res.Ventas = append(res.Ventas, toVentaResponse(v, v.Producto.Nombre))
			res.Totales.TotalVendido = res.Totales.TotalVendido.Add(v.TotalVendido)
			res.Totales.TotalGanancia = res.Totales.TotalGanancia.Add(v.Ganancia)
			res.Totales.TotalDiezmo = res.Totales.TotalDiezmo.Add(v.Diezmo)
		}
		return c.JSON(res)
	}
}

// POST /api/ventas
func CreateVentaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		var body CreateVentaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		fecha, err := time.Parse("2006-01-02", body.FechaVenta)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha debe tener formato 'YYYY-MM-DD'")
		}

		venta, err := RegistrarVenta(database.DB, usuarioID, NuevaVenta{
			ProductoID:      body.ProductoID,
			ClienteNombre:   body.ClienteNombre,
			ClienteTelefono: body.ClienteTelefono,
			Cantidad:        body.Cantidad,
			TipoVenta:       models.TipoVenta(body.TipoVenta),
			FechaVenta:      fecha,
		})
		if err != nil {
			return err
		}

		if id, nombre, err := audit.Actor(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UsuarioID:     id,
				UsuarioNombre: nombre,
				Entidad:       "venta",
				EntidadID:     venta.ID,
				Accion:        models.AccionCrear,
				Descripcion: fmt.Sprintf("Venta registrada: %d x %s por %s (%s)",
					venta.Cantidad, venta.Producto.Nombre, venta.TotalVendido.StringFixed(2), venta.TipoVenta),
				Despues: toVentaResponse(venta, venta.Producto.Nombre),
			}); logErr != nil {
				logger.L().Warn("no se pudo escribir la bitácora", zap.Error(logErr))
			}
		}

		logger.L().Info("venta registrada",
			zap.Uint("venta_id", venta.ID),
			zap.Uint("producto_id", venta.ProductoID),
			zap.Int("cantidad", venta.Cantidad),
			zap.String("total", venta.TotalVendido.StringFixed(2)),
			zap.String("tipo", string(venta.TipoVenta)),
		)

		return c.Status(fiber.StatusCreated).JSON(toVentaResponse(venta, venta.Producto.Nombre))
	}
}
