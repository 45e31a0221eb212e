package configuracion

import (
	"negocio-backend/internal/auth"
	"negocio-backend/internal/database"
	"negocio-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Valores por defecto para cuentas nuevas: peso dominicano.
const (
	MonedaSimboloDefault = "RD$"
	MonedaCodigoDefault  = "DOP"
)

// Get lee una clave de configuración del usuario, con valor por defecto
// si nunca se ha guardado.
func Get(db *gorm.DB, usuarioID uint, clave, porDefecto string) string {
	var cfg models.Configuracion
	if err := db.Where("usuario_id = ? AND clave = ?", usuarioID, clave).
		First(&cfg).Error; err != nil {
		return porDefecto
	}
	return cfg.Valor
}

// Set guarda (o reemplaza) una clave de configuración del usuario.
func Set(db *gorm.DB, usuarioID uint, clave, valor string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "usuario_id"}, {Name: "clave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor", "updated_at"}),
	}).Create(&models.Configuracion{
		UsuarioID: usuarioID,
		Clave:     clave,
		Valor:     valor,
	}).Error
}

type MonedaRequest struct {
	MonedaSimbolo string `json:"moneda_simbolo"`
	MonedaCodigo  string `json:"moneda_codigo"`
}

// GET /api/configuracion
func GetConfiguracionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"moneda_simbolo": Get(database.DB, usuarioID, models.ClaveMonedaSimbolo, MonedaSimboloDefault),
			"moneda_codigo":  Get(database.DB, usuarioID, models.ClaveMonedaCodigo, MonedaCodigoDefault),
		})
	}
}

// PUT /api/configuracion
func UpdateConfiguracionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		var body MonedaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.MonedaSimbolo != "" {
			if err := Set(database.DB, usuarioID, models.ClaveMonedaSimbolo, body.MonedaSimbolo); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la configuración")
			}
		}
		if body.MonedaCodigo != "" {
			if err := Set(database.DB, usuarioID, models.ClaveMonedaCodigo, body.MonedaCodigo); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la configuración")
			}
		}

		return c.JSON(fiber.Map{
			"moneda_simbolo": Get(database.DB, usuarioID, models.ClaveMonedaSimbolo, MonedaSimboloDefault),
			"moneda_codigo":  Get(database.DB, usuarioID, models.ClaveMonedaCodigo, MonedaCodigoDefault),
		})
	}
}
