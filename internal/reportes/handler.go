package reportes

import (
	"fmt"
	"time"

	"negocio-backend/internal/auth"
	"negocio-backend/internal/configuracion"
	"negocio-backend/internal/database"
	"negocio-backend/internal/diezmos"
	"negocio-backend/internal/gastos"
	"negocio-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func enviarExcel(c *fiber.Ctx, f *excelize.File, nombre string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el archivo")
	}
	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, nombre))
	return c.Send(buf.Bytes())
}

// GET /api/reportes/ventas?mes=12&anio=2025
func ReporteVentasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		ahora := time.Now()
		mes := c.QueryInt("mes", int(ahora.Month()))
		anio := c.QueryInt("anio", ahora.Year())
		if mes < 1 || mes > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Mes inválido")
		}

		desde := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
		hasta := desde.AddDate(0, 1, 0)

		var ventas []models.Venta
		if err := database.DB.Preload("Producto").
			Where("usuario_id = ? AND fecha_venta >= ? AND fecha_venta < ?",
				usuarioID, desde, hasta).
			Order("fecha_venta asc, id asc").
			Find(&ventas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron consultar las ventas")
		}

		filas := make([]FilaVenta, 0, len(ventas))
		for i := range ventas {
			v := &ventas[i]
			filas = append(filas, FilaVenta{
				Fecha:          v.FechaVenta.Format("2006-01-02"),
				ClienteNombre:  v.ClienteNombre,
				ProductoNombre: v.Producto.Nombre,
				Cantidad:       v.Cantidad,
				PrecioUnitario: v.PrecioUnitario,
				TotalVendido:   v.TotalVendido,
				Ganancia:       v.Ganancia,
				Diezmo:         v.Diezmo,
			})
		}

		simbolo := configuracion.Get(database.DB, usuarioID,
			models.ClaveMonedaSimbolo, configuracion.MonedaSimboloDefault)
		titulo := fmt.Sprintf("Reporte de Ventas - %s %d", diezmos.NombreMes(mes), anio)

		f, err := GenerarReporteVentas(titulo, simbolo, filas)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}
		return enviarExcel(c, f, fmt.Sprintf("ventas_%d_%02d.xlsx", anio, mes))
	}
}

// GET /api/reportes/gastos?mes=12&anio=2025&quincena=1
func ReporteGastosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		ahora := time.Now()
		mes := c.QueryInt("mes", int(ahora.Month()))
		anio := c.QueryInt("anio", ahora.Year())
		quincena := c.QueryInt("quincena", 1)
		if mes < 1 || mes > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Mes inválido")
		}
		if quincena != 1 && quincena != 2 {
			return fiber.NewError(fiber.StatusBadRequest, "La quincena debe ser 1 o 2")
		}

		desde, hasta := gastos.RangoQuincena(anio, mes, quincena)

		var registros []models.Gasto
		if err := database.DB.Where("usuario_id = ? AND fecha >= ? AND fecha < ?",
			usuarioID, desde, hasta).
			Order("fecha asc, id asc").
			Find(&registros).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron consultar los gastos")
		}

		filas := make([]FilaGasto, 0, len(registros))
		for i := range registros {
			g := &registros[i]
			filas = append(filas, FilaGasto{
				Fecha:       g.Fecha.Format("2006-01-02"),
				Categoria:   g.Categoria,
				Descripcion: g.Descripcion,
				Monto:       g.Monto,
			})
		}

		simbolo := configuracion.Get(database.DB, usuarioID,
			models.ClaveMonedaSimbolo, configuracion.MonedaSimboloDefault)
		titulo := fmt.Sprintf("Gastos %da Quincena - %s %d",
			quincena, diezmos.NombreMes(mes), anio)

		f, err := GenerarReporteGastos(titulo, simbolo, filas)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}
		return enviarExcel(c, f, fmt.Sprintf("gastos_%d_%02d_q%d.xlsx", anio, mes, quincena))
	}
}
