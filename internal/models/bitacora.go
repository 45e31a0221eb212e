package models

import "time"

type AccionBitacora string

const (
	AccionCrear      AccionBitacora = "crear"
	AccionActualizar AccionBitacora = "actualizar"
	AccionEliminar   AccionBitacora = "eliminar"
)

// Bitacora guarda el rastro de cada operación que modifica datos, con el
// estado anterior y posterior en JSON.
type Bitacora struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UsuarioID     uint   `gorm:"index" json:"usuario_id"`
	UsuarioNombre string `gorm:"size:200" json:"usuario_nombre"` // denormalizado

	// Entidad afectada (ej: "venta", "pago", "gasto", "producto")
	Entidad   string `gorm:"size:50;index" json:"entidad"`
	EntidadID uint   `gorm:"index" json:"entidad_id"`

	Accion      AccionBitacora `gorm:"size:20" json:"accion"`
	Descripcion string         `gorm:"size:255" json:"descripcion"`

	// Estado antes y después (JSON)
	DatosAntes   string `gorm:"type:jsonb" json:"datos_antes"`
	DatosDespues string `gorm:"type:jsonb" json:"datos_despues"`
}
