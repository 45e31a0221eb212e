package diezmos

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

var nombresMes = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// NombreMes devuelve el nombre del mes en español (1 = Enero).
func NombreMes(mes int) string {
	if mes < 1 || mes > 12 {
		return ""
	}
	return nombresMes[mes-1]
}

type DiezmoResponse struct {
	ID           uint            `json:"id"`
	Mes          int             `json:"mes"`
	Anio         int             `json:"anio"`
	NombreMes    string          `json:"nombre_mes"`
	TotalDiezmo  decimal.Decimal `json:"total_diezmo"`
	Estado       string          `json:"estado"`
	FechaEntrega string          `json:"fecha_entrega,omitempty"`
}

type ResumenDiezmos struct {
	TotalPendiente decimal.Decimal `json:"total_pendiente"`
	TotalEntregado decimal.Decimal `json:"total_entregado"`
	TotalGeneral   decimal.Decimal `json:"total_general"`
}

func toDiezmoResponse(d *models.DiezmoMensual) DiezmoResponse {
	res := DiezmoResponse{
		ID:          d.ID,
		Mes:         d.Mes,
		Anio:        d.Anio,
		NombreMes:   NombreMes(d.Mes),
		TotalDiezmo: d.TotalDiezmo,
		Estado:      string(d.Estado),
	}
	if d.FechaEntrega != nil {
		res.FechaEntrega = d.FechaEntrega.Format("2006-01-02")
	}
	return res
}

// GET /api/diezmos
func ListDiezmosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		var diezmos []models.DiezmoMensual
		if err := database.DB.Where("usuario_id = ?", usuarioID).
			Order("anio desc, mes desc").
			Find(&diezmos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron consultar los diezmos")
		}

		resumen := ResumenDiezmos{
			TotalPendiente: decimal.Zero,
			TotalEntregado: decimal.Zero,
			TotalGeneral:   decimal.Zero,
		}
		items := make([]DiezmoResponse, 0, len(diezmos))
		for i := range diezmos {
			d := &diezmos[i]
			items = append(items, toDiezmoResponse(d))
			resumen.TotalGeneral = resumen.TotalGeneral.Add(d.TotalDiezmo)
			if d.Estado == models.DiezmoEntregado {
				resumen.TotalEntregado = resumen.TotalEntregado.Add(d.TotalDiezmo)
			} else {
				resumen.TotalPendiente = resumen.TotalPendiente.Add(d.TotalDiezmo)
			}
		}

		return c.JSON(fiber.Map{
			"diezmos": items,
			"resumen": resumen,
		})
	}
}

// PUT /api/diezmos/:id/entrega
//
// Alterna Pendiente <-> Entregado. Al marcar como entregado se fija la
// fecha de entrega; al revertir se limpia.
func ToggleEntregaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}
		diezmoID, err := c.ParamsInt("id")
		if err != nil || diezmoID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de diezmo inválido")
		}

		var diezmo models.DiezmoMensual
		if err := database.DB.Where("id = ? AND usuario_id = ?", diezmoID, usuarioID).
			First(&diezmo).Error; err != nil {
			return apperror.NewNotFound("Diezmo")
		}

		antes := toDiezmoResponse(&diezmo)

		if diezmo.Estado == models.DiezmoEntregado {
			diezmo.Estado = models.DiezmoPendiente
			diezmo.FechaEntrega = nil
		} else {
			diezmo.Estado = models.DiezmoEntregado
			hoy := time.Now()
			diezmo.FechaEntrega = &hoy
		}

		if err := database.DB.Model(&diezmo).
			Select("estado", "fecha_entrega").
			Updates(map[string]interface{}{
				"estado":        diezmo.Estado,
				"fecha_entrega": diezmo.FechaEntrega,
			}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el diezmo")
		}

		if id, nombre, err := audit.Actor(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UsuarioID:     id,
				UsuarioNombre: nombre,
				Entidad:       "diezmo",
				EntidadID:     diezmo.ID,
				Accion:        models.AccionActualizar,
				Descripcion: fmt.Sprintf("Diezmo de %s %d marcado como %s",
					NombreMes(diezmo.Mes), diezmo.Anio, diezmo.Estado),
				Antes:   antes,
				Despues: toDiezmoResponse(&diezmo),
			}); logErr != nil {
				logger.L().Warn("no se pudo escribir la bitácora", zap.Error(logErr))
			}
		}

		return c.JSON(toDiezmoResponse(&diezmo))
	}
}
