package dashboard

import (
	"time"

	"negocio-backend/internal/auth"
	"negocio-backend/internal/database"
	"negocio-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var mesesCortos = [...]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

type ProductoCritico struct {
	ID       uint   `json:"id"`
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
	Estado   string `json:"estado"`
}

type VentaReciente struct {
	ID             uint            `json:"id"`
	ClienteNombre  string          `json:"cliente_nombre"`
	ProductoNombre string          `json:"producto_nombre"`
	TotalVendido   decimal.Decimal `json:"total_vendido"`
	EstadoPago     string          `json:"estado_pago"`
	FechaVenta     string          `json:"fecha_venta"`
}

// GET /api/dashboard
//
// Resumen del mes en curso más el estado general del inventario y las
// cuentas por cobrar.
func ResumenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		ahora := time.Now()
		desde := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, time.UTC)
		hasta := desde.AddDate(0, 1, 0)

		var ventasMes []models.Venta
		if err := database.DB.Where("usuario_id = ? AND fecha_venta >= ? AND fecha_venta < ?",
			usuarioID, desde, hasta).
			Find(&ventasMes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo consultar el resumen")
		}

		totalVendido := decimal.Zero
		totalGanancia := decimal.Zero
		totalDiezmo := decimal.Zero
		for _, v := range ventasMes {
			totalVendido = totalVendido.Add(v.TotalVendido)
			totalGanancia = totalGanancia.Add(v.Ganancia)
			totalDiezmo = totalDiezmo.Add(v.Diezmo)
		}

		// Pendiente por cobrar: crédito sin completar, en todo el histórico.
		var ventasCredito []models.Venta
		if err := database.DB.Where("usuario_id = ? AND tipo_venta = ? AND estado_pago <> ?",
			usuarioID, models.VentaCredito, models.PagoCompletado).
			Find(&ventasCredito).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo consultar el resumen")
		}
		pendientePorCobrar := decimal.Zero
		for _, v := range ventasCredito {
			var pagos []models.Pago
			if err := database.DB.Where("venta_id = ?", v.ID).Find(&pagos).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo consultar el resumen")
			}
			pagado := decimal.Zero
			for _, p := range pagos {
				pagado = pagado.Add(p.Monto)
			}
			pendientePorCobrar = pendientePorCobrar.Add(v.TotalVendido.Sub(pagado))
		}

		var productos []models.Producto
		if err := database.DB.Where("usuario_id = ?", usuarioID).
			Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo consultar el inventario")
		}
		valorInventario := decimal.Zero
		bajoStock := 0
		agotados := 0
		criticos := make([]ProductoCritico, 0, 5)
		for _, p := range productos {
			valorInventario = valorInventario.Add(
				p.CostoUnitario.Mul(decimal.NewFromInt(int64(p.Cantidad))))
			switch p.Estado {
			case models.ProductoBajo:
				bajoStock++
			case models.ProductoAgotado:
				agotados++
			}
			if p.Estado != models.ProductoDisponible && len(criticos) < 5 {
				criticos = append(criticos, ProductoCritico{
					ID:       p.ID,
					Nombre:   p.Nombre,
					Cantidad: p.Cantidad,
					Estado:   string(p.Estado),
				})
			}
		}

		var recientes []models.Venta
		if err := database.DB.Preload("Producto").
			Where("usuario_id = ?", usuarioID).
			Order("fecha_venta desc, id desc").
			Limit(5).
			Find(&recientes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo consultar el resumen")
		}
		ventasRecientes := make([]VentaReciente, 0, len(recientes))
		for i := range recientes {
			v := &recientes[i]
			ventasRecientes = append(ventasRecientes, VentaReciente{
				ID:             v.ID,
				ClienteNombre:  v.ClienteNombre,
				ProductoNombre: v.Producto.Nombre,
				TotalVendido:   v.TotalVendido,
				EstadoPago:     string(v.EstadoPago),
				FechaVenta:     v.FechaVenta.Format("2006-01-02"),
			})
		}

		return c.JSON(fiber.Map{
			"mes": fiber.Map{
				"total_vendido":  totalVendido,
				"total_ganancia": totalGanancia,
				"total_diezmo":   totalDiezmo,
			},
			"pendiente_por_cobrar": pendientePorCobrar,
			"inventario": fiber.Map{
				"valor_total":        valorInventario,
				"total_productos":    len(productos),
				"bajo_stock":         bajoStock,
				"agotados":           agotados,
				"productos_criticos": criticos,
			},
			"ventas_recientes": ventasRecientes,
		})
	}
}

// GET /api/estadisticas
//
// Ingresos de los últimos seis meses calendario (incluido el actual),
// del más antiguo al más reciente.
func EstadisticasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		ahora := time.Now()
		inicioMesActual := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, time.UTC)

		type puntoMes struct {
			Mes     string          `json:"mes"`
			Ingreso decimal.Decimal `json:"ingreso"`
		}
		puntos := make([]puntoMes, 0, 6)

		for i := 5; i >= 0; i-- {
			desde := inicioMesActual.AddDate(0, -i, 0)
			hasta := desde.AddDate(0, 1, 0)

			var ventas []models.Venta
			if err := database.DB.Where("usuario_id = ? AND fecha_venta >= ? AND fecha_venta < ?",
				usuarioID, desde, hasta).
				Find(&ventas).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron consultar las estadísticas")
			}
			ingreso := decimal.Zero
			for _, v := range ventas {
				ingreso = ingreso.Add(v.TotalVendido)
			}
			puntos = append(puntos, puntoMes{
				Mes:     mesesCortos[int(desde.Month())-1],
				Ingreso: ingreso,
			})
		}

		return c.JSON(fiber.Map{"meses": puntos})
	}
}
