package ventas

import (
	"errors"
	"strings"
	"time"

	"negocio-backend/internal/apperror"
	"negocio-backend/internal/database"
	"negocio-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// tasaDiezmo es fija: 10% del total vendido, no es configurable.
var tasaDiezmo = decimal.New(10, -2)

type NuevaVenta struct {
	ProductoID      uint
	ClienteNombre   string
	ClienteTelefono string
	Cantidad        int
	TipoVenta       models.TipoVenta
	FechaVenta      time.Time
}

// RegistrarVenta ejecuta el alta de una venta como una sola unidad
// atómica: inserta la venta, registra el pago implícito si es al contado,
// descuenta el inventario y acumula el diezmo del mes. Si cualquier paso
// falla, ninguno de los efectos queda visible.
func RegistrarVenta(db *gorm.DB, usuarioID uint, in NuevaVenta) (*models.Venta, error) {
	in.ClienteNombre = strings.TrimSpace(in.ClienteNombre)
	if in.ClienteNombre == "" {
		return nil, apperror.NewValidation("El nombre del cliente es obligatorio")
	}
	if in.Cantidad <= 0 {
		return nil, apperror.NewValidation("La cantidad debe ser mayor que cero")
	}
	if in.TipoVenta != models.VentaContado && in.TipoVenta != models.VentaCredito {
		return nil, apperror.NewValidation("El tipo de venta debe ser 'contado' o 'credito'")
	}
	if in.FechaVenta.IsZero() {
		return nil, apperror.NewValidation("La fecha de venta es obligatoria")
	}

	var venta models.Venta
	var producto models.Producto

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&producto, "id = ? AND usuario_id = ?", in.ProductoID, usuarioID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewNotFound("Producto")
			}
			return err
		}

		if in.Cantidad > producto.Cantidad {
			return apperror.NewInsufficientStock(producto.Cantidad)
		}

		// los precios se copian en este instante; cambios posteriores del
		// producto no tocan la venta
		cantidad := decimal.NewFromInt(int64(in.Cantidad))
		total := producto.PrecioVenta.Mul(cantidad)
		costoTotal := producto.CostoUnitario.Mul(cantidad)

		estadoPago := models.PagoPendiente
		if in.TipoVenta == models.VentaContado {
			estadoPago = models.PagoCompletado
		}

		venta = models.Venta{
			UsuarioID:       usuarioID,
			ProductoID:      producto.ID,
			ClienteNombre:   in.ClienteNombre,
			ClienteTelefono: strings.TrimSpace(in.ClienteTelefono),
			Cantidad:        in.Cantidad,
			PrecioUnitario:  producto.PrecioVenta,
			TotalVendido:    total,
			CostoTotal:      costoTotal,
			Ganancia:        total.Sub(costoTotal),
			Diezmo:          total.Mul(tasaDiezmo),
			TipoVenta:       in.TipoVenta,
			EstadoPago:      estadoPago,
			FechaVenta:      in.FechaVenta,
		}
		if err := tx.Create(&venta).Error; err != nil {
			return err
		}

		// el contado también deja su pago registrado, así el historial de
		// pagos queda completo para toda venta
		if in.TipoVenta == models.VentaContado {
			pago := models.Pago{
				UsuarioID:  usuarioID,
				VentaID:    venta.ID,
				Monto:      total,
				FechaPago:  in.FechaVenta,
				MetodoPago: "Contado",
				Notas:      "Pago completo al contado",
			}
			if err := tx.Create(&pago).Error; err != nil {
				return err
			}
		}

		// descuento condicionado: dos ventas simultáneas del mismo
		// producto no pueden dejar la cantidad en negativo
		res := tx.Model(&models.Producto{}).
			Where("id = ? AND usuario_id = ? AND cantidad >= ?", producto.ID, usuarioID, in.Cantidad).
			UpdateColumn("cantidad", gorm.Expr("cantidad - ?", in.Cantidad))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NewInsufficientStock(producto.Cantidad)
		}

		var actualizado models.Producto
		if err := tx.First(&actualizado, producto.ID).Error; err != nil {
			return err
		}
		nuevoEstado := models.DeterminarEstado(actualizado.Cantidad, actualizado.StockMinimo)
		if err := tx.Model(&actualizado).UpdateColumn("estado", nuevoEstado).Error; err != nil {
			return err
		}

		return acumularDiezmo(tx, usuarioID, in.FechaVenta, venta.Diezmo)
	})
	if err != nil {
		return nil, err
	}

	// la venta devuelta trae el producto ya cargado, sin segunda consulta
	venta.Producto = producto
	return &venta, nil
}

// acumularDiezmo suma el diezmo de la venta sobre la fila del período, o
// la crea si es la primera venta de ese mes. El incremento se hace en SQL
// para que dos ventas concurrentes del mismo mes no se pisen.
func acumularDiezmo(tx *gorm.DB, usuarioID uint, fechaVenta time.Time, diezmo decimal.Decimal) error {
	mes := int(fechaVenta.Month())
	anio := fechaVenta.Year()

	var existente models.DiezmoMensual
	err := tx.Where("mes = ? AND anio = ? AND usuario_id = ?", mes, anio, usuarioID).First(&existente).Error
	switch {
	case err == nil:
		return tx.Model(&existente).
			UpdateColumn("total_diezmo", gorm.Expr("total_diezmo + ?", diezmo)).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		nuevo := models.DiezmoMensual{
			Mes:         mes,
			Anio:        anio,
			UsuarioID:   usuarioID,
			TotalDiezmo: diezmo,
			Estado:      models.DiezmoPendiente,
		}
		return tx.Create(&nuevo).Error
	default:
		return err
	}
}

type NuevoPago struct {
	Monto      decimal.Decimal
	FechaPago  time.Time
	MetodoPago string
	Notas      string
}

// RegistrarPago agrega un abono a una venta a crédito y recalcula su
// estado de pago. La suma de pagos nunca puede superar el total de la
// venta; el estado solo avanza, nunca vuelve atrás de completado.
func RegistrarPago(db *gorm.DB, usuarioID uint, ventaID uint, in NuevoPago) (*models.Pago, error) {
	if !in.Monto.IsPositive() {
		return nil, apperror.NewValidation("El monto debe ser mayor que cero")
	}
	if in.FechaPago.IsZero() {
		return nil, apperror.NewValidation("La fecha de pago es obligatoria")
	}

	var pago models.Pago

	err := db.Transaction(func(tx *gorm.DB) error {
		// el bloqueo de la venta evita que dos abonos concurrentes lean el
		// mismo saldo y sobrepaguen entre los dos
		var venta models.Venta
		if err := database.BloquearFila(tx).First(&venta, "id = ? AND usuario_id = ?", ventaID, usuarioID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewNotFound("Venta")
			}
			return err
		}

		var pagos []models.Pago
		if err := tx.Where("venta_id = ?", venta.ID).Find(&pagos).Error; err != nil {
			return err
		}
		totalPagado := decimal.Zero
		for _, p := range pagos {
			totalPagado = totalPagado.Add(p.Monto)
		}

		saldoPendiente := venta.TotalVendido.Sub(totalPagado)
		if in.Monto.GreaterThan(saldoPendiente) {
			return apperror.NewOverpayment(saldoPendiente)
		}

		pago = models.Pago{
			UsuarioID:  usuarioID,
			VentaID:    venta.ID,
			Monto:      in.Monto,
			FechaPago:  in.FechaPago,
			MetodoPago: strings.TrimSpace(in.MetodoPago),
			Notas:      strings.TrimSpace(in.Notas),
		}
		if err := tx.Create(&pago).Error; err != nil {
			return err
		}

		nuevoEstado := models.PagoParcial
		if totalPagado.Add(in.Monto).GreaterThanOrEqual(venta.TotalVendido) {
			nuevoEstado = models.PagoCompletado
		}

		return tx.Model(&venta).UpdateColumn("estado_pago", nuevoEstado).Error
	})
	if err != nil {
		return nil, err
	}

	return &pago, nil
}
