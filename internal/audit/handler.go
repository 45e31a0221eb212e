package audit

import (
	"negocio-backend/internal/auth"
	"negocio-backend/internal/database"
	"negocio-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BitacoraResponse struct {
	ID            uint   `json:"id"`
	CreatedAt     string `json:"created_at"`
	UsuarioNombre string `json:"usuario_nombre"`
	Entidad       string `json:"entidad"`
	EntidadID     uint   `json:"entidad_id"`
	Accion        string `json:"accion"`
	Descripcion   string `json:"descripcion"`
	DatosAntes    string `json:"datos_antes"`
	DatosDespues  string `json:"datos_despues"`
}

// GET /api/bitacora?entidad=venta&limite=50
func ListBitacoraHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		limite := c.QueryInt("limite", 50)
		if limite <= 0 || limite > 500 {
			limite = 50
		}

		dbq := database.DB.Model(&models.Bitacora{}).
			Where("usuario_id = ?", usuarioID)

		if entidad := c.Query("entidad"); entidad != "" {
			dbq = dbq.Where("entidad = ?", entidad)
		}

		var registros []models.Bitacora
		if err := dbq.Order("id desc").Limit(limite).Find(&registros).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar la bitácora")
		}

		res := make([]BitacoraResponse, 0, len(registros))
		for _, r := range registros {
			res = append(res, BitacoraResponse{
				ID:            r.ID,
				CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
				UsuarioNombre: r.UsuarioNombre,
				Entidad:       r.Entidad,
				EntidadID:     r.EntidadID,
				Accion:        string(r.Accion),
				Descripcion:   r.Descripcion,
				DatosAntes:    r.DatosAntes,
				DatosDespues:  r.DatosDespues,
			})
		}
		return c.JSON(res)
	}
}
