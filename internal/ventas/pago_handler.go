package ventas

import (
	"fmt"
	"time"

	"negocio-backend/internal/apperror"
	"negocio-backend/internal/audit"
	"negocio-backend/internal/auth"
	"negocio-backend/internal/database"
	"negocio-backend/internal/logger"
	"negocio-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreatePagoRequest struct {
	Monto      decimal.Decimal `json:"monto"`
	FechaPago  string          `json:"fecha_pago"` // "2025-12-09"
	MetodoPago string          `json:"metodo_pago"`
	Notas      string          `json:"notas"`
}

type PagoResponse struct {
	ID         uint            `json:"id"`
	VentaID    uint            `json:"venta_id"`
	Monto      decimal.Decimal `json:"monto"`
	FechaPago  string          `json:"fecha_pago"`
	MetodoPago string          `json:"metodo_pago"`
	Notas      string          `json:"notas"`
}

type CuentaPorCobrar struct {
	VentaID         uint            `json:"venta_id"`
	ClienteNombre   string          `json:"cliente_nombre"`
	ClienteTelefono string          `json:"cliente_telefono"`
	ProductoNombre  string          `json:"producto_nombre"`
	Cantidad        int             `json:"cantidad"`
	TotalVendido    decimal.Decimal `json:"total_vendido"`
	TotalPagado     decimal.Decimal `json:"total_pagado"`
	SaldoPendiente  decimal.Decimal `json:"saldo_pendiente"`
	EstadoPago      string          `json:"estado_pago"`
	FechaVenta      string          `json:"fecha_venta"`
}

type CuentasPorCobrarResponse struct {
	Cuentas        []CuentaPorCobrar `json:"cuentas"`
	TotalPendiente decimal.Decimal   `json:"total_pendiente"`
}

func toPagoResponse(p *models.Pago) PagoResponse {
	return PagoResponse{
		ID:         p.ID,
		VentaID:    p.VentaID,
		Monto:      p.Monto,
		FechaPago:  p.FechaPago.Format("2006-01-02"),
		MetodoPago: p.MetodoPago,
		Notas:      p.Notas,
	}
}

// GET /api/cuentas-por-cobrar
//
// Solo las ventas a crédito con saldo pendiente; las de contado nacen
// completadas y nunca aparecen aquí.
func CuentasPorCobrarHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		var ventas []models.Venta
		if err := database.DB.Preload("Producto").
			Where("usuario_id = ? AND tipo_venta = ? AND estado_pago <> ?",
				usuarioID, models.VentaCredito, models.PagoCompletado).
			Order("fecha_venta asc, id asc").
			Find(&ventas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron consultar las cuentas por cobrar")
		}

		res := CuentasPorCobrarResponse{
			Cuentas:        make([]CuentaPorCobrar, 0, len(ventas)),
			TotalPendiente: decimal.Zero,
		}
		for i := range ventas {
			v := &ventas[i]

			var pagos []models.Pago
			if err := database.DB.Where("venta_id = ?", v.ID).Find(&pagos).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron consultar los pagos")
			}
			totalPagado := decimal.Zero
			for _, p := range pagos {
				totalPagado = totalPagado.Add(p.Monto)
			}
			saldo := v.TotalVendido.Sub(totalPagado)

			res.Cuentas = append(res.Cuentas, CuentaPorCobrar{
				VentaID:         v.ID,
				ClienteNombre:   v.ClienteNombre,
				ClienteTelefono: v.ClienteTelefono,
				ProductoNombre:  v.Producto.Nombre,
				Cantidad:        v.Cantidad,
				TotalVendido:    v.TotalVendido,
				TotalPagado:     totalPagado,
				SaldoPendiente:  saldo,
				EstadoPago:      string(v.EstadoPago),
				FechaVenta:      v.FechaVenta.Format("2006-01-02"),
			})
			res.TotalPendiente = res.TotalPendiente.Add(saldo)
		}
		return c.JSON(res)
	}
}

// GET /api/ventas/:id/pagos
func ListPagosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}
		ventaID, err := c.ParamsInt("id")
		if err != nil || ventaID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de venta inválido")
		}

		var venta models.Venta
		if err := database.DB.Where("id = ? AND usuario_id = ?", ventaID, usuarioID).
			First(&venta).Error; err != nil {
			return apperror.NewNotFound("Venta")
		}

		var pagos []models.Pago
		if err := database.DB.Where("venta_id = ?", venta.ID).
			Order("fecha_pago asc, id asc").
			Find(&pagos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron consultar los pagos")
		}

		totalPagado := decimal.Zero
		items := make([]PagoResponse, 0, len(pagos))
		for i := range pagos {
			items = append(items, toPagoResponse(&pagos[i]))
			totalPagado = totalPagado.Add(pagos[i].Monto)
		}

		return c.JSON(fiber.Map{
			"pagos":           items,
			"total_vendido":   venta.TotalVendido,
			"total_pagado":    totalPagado,
			"saldo_pendiente": venta.TotalVendido.Sub(totalPagado),
			"estado_pago":     venta.EstadoPago,
		})
	}
}

// POST /api/ventas/:id/pagos
func CreatePagoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}
		ventaID, err := c.ParamsInt("id")
		if err != nil || ventaID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de venta inválido")
		}

		var body CreatePagoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		fecha, err := time.Parse("2006-01-02", body.FechaPago)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha debe tener formato 'YYYY-MM-DD'")
		}

		pago, err := RegistrarPago(database.DB, usuarioID, uint(ventaID), NuevoPago{
			Monto:      body.Monto,
			FechaPago:  fecha,
			MetodoPago: body.MetodoPago,
			Notas:      body.Notas,
		})
		if err != nil {
			return err
		}

		if id, nombre, err := audit.Actor(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UsuarioID:     id,
				UsuarioNombre: nombre,
				Entidad:       "pago",
				EntidadID:     pago.ID,
				Accion:        models.AccionCrear,
				Descripcion: fmt.Sprintf("Pago de %s registrado para la venta #%d",
					pago.Monto.StringFixed(2), pago.VentaID),
				Despues: toPagoResponse(pago),
			}); logErr != nil {
				logger.L().Warn("no se pudo escribir la bitácora", zap.Error(logErr))
			}
		}

		logger.L().Info("pago registrado",
			zap.Uint("pago_id", pago.ID),
			zap.Uint("venta_id", pago.VentaID),
			zap.String("monto", pago.Monto.StringFixed(2)),
		)

		return c.Status(fiber.StatusCreated).JSON(toPagoResponse(pago))
	}
}
