package gastos

import (
	"fmt"
	"strings"
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

type CreateGastoRequest struct {
	Fecha       string          `json:"fecha"` // "2025-12-09"
	Categoria   string          `json:"categoria"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
}

type GastoResponse struct {
	ID          uint            `json:"id"`
	Fecha       string          `json:"fecha"`
	Categoria   string          `json:"categoria"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
}

func toGastoResponse(g *models.Gasto) GastoResponse {
	return GastoResponse{
		ID:          g.ID,
		Fecha:       g.Fecha.Format("2006-01-02"),
		Categoria:   g.Categoria,
		Descripcion: g.Descripcion,
		Monto:       g.Monto,
	}
}

// RangoQuincena devuelve [desde, hasta) para la quincena del mes:
// la primera cubre los días 1 al 15, la segunda del 16 al fin de mes.
func RangoQuincena(anio, mes, quincena int) (time.Time, time.Time) {
	if quincena == 1 {
		desde := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
		return desde, desde.AddDate(0, 0, 15)
	}
	desde := time.Date(anio, time.Month(mes), 16, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return desde, hasta
}

// GET /api/gastos?mes=12&anio=2025
func ListGastosHandler() fiber.Handler {
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

		var gastos []models.Gasto
		if err := database.DB.Where("usuario_id = ? AND fecha >= ? AND fecha < ?",
			usuarioID, desde, hasta).
			Order("fecha desc, id desc").
			Find(&gastos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron consultar los gastos")
		}

		total := decimal.Zero
		porCategoria := map[string]decimal.Decimal{}
		items := make([]GastoResponse, 0, len(gastos))
		for i := range gastos {
			g := &gastos[i]
			items = append(items, toGastoResponse(g))
			total = total.Add(g.Monto)
			porCategoria[g.Categoria] = porCategoria[g.Categoria].Add(g.Monto)
		}

		return c.JSON(fiber.Map{
			"gastos":              items,
			"total":               total,
			"total_por_categoria": porCategoria,
			"mes":                 mes,
			"anio":                anio,
		})
	}
}

// POST /api/gastos
func CreateGastoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		var body CreateGastoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		body.Categoria = strings.TrimSpace(body.Categoria)
		body.Descripcion = strings.TrimSpace(body.Descripcion)
		if body.Categoria == "" {
			return apperror.NewValidation("La categoría es obligatoria")
		}
		if !body.Monto.IsPositive() {
			return apperror.NewValidation("El monto debe ser mayor que cero")
		}
		fecha, err := time.Parse("2006-01-02", body.Fecha)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha debe tener formato 'YYYY-MM-DD'")
		}

		gasto := models.Gasto{
			UsuarioID:   usuarioID,
			Fecha:       fecha,
			Categoria:   body.Categoria,
			Descripcion: body.Descripcion,
			Monto:       body.Monto,
		}
		if err := database.DB.Create(&gasto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el gasto")
		}

		if id, nombre, err := audit.Actor(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UsuarioID:     id,
				UsuarioNombre: nombre,
				Entidad:       "gasto",
				EntidadID:     gasto.ID,
				Accion:        models.AccionCrear,
				Descripcion: fmt.Sprintf("Gasto registrado: %s por %s",
					gasto.Categoria, gasto.Monto.StringFixed(2)),
				Despues: toGastoResponse(&gasto),
			}); logErr != nil {
				logger.L().Warn("no se pudo escribir la bitácora", zap.Error(logErr))
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toGastoResponse(&gasto))
	}
}

// DELETE /api/gastos/:id
func DeleteGastoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}
		gastoID, err := c.ParamsInt("id")
		if err != nil || gastoID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de gasto inválido")
		}

		var gasto models.Gasto
		if err := database.DB.Where("id = ? AND usuario_id = ?", gastoID, usuarioID).
			First(&gasto).Error; err != nil {
			return apperror.NewNotFound("Gasto")
		}

		if err := database.DB.Delete(&gasto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el gasto")
		}

		if id, nombre, err := audit.Actor(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UsuarioID:     id,
				UsuarioNombre: nombre,
				Entidad:       "gasto",
				EntidadID:     gasto.ID,
				Accion:        models.AccionEliminar,
				Descripcion: fmt.Sprintf("Gasto eliminado: %s por %s",
					gasto.Categoria, gasto.Monto.StringFixed(2)),
				Antes: toGastoResponse(&gasto),
			}); logErr != nil {
				logger.L().Warn("no se pudo escribir la bitácora", zap.Error(logErr))
			}
		}

		return c.JSON(fiber.Map{"mensaje": "Gasto eliminado"})
	}
}
