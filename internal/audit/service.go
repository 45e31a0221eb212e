package audit

import (
	"encoding/json"
	"fmt"

	"negocio-backend/internal/database"
	"negocio-backend/internal/models"
)

type LogOptions struct {
	UsuarioID     uint
	UsuarioNombre string
	Entidad       string
	EntidadID     uint
	Accion        models.AccionBitacora
	Descripcion   string
	Antes         any
	Despues       any
}

// WriteLog guarda un registro en la bitácora. Un fallo aquí nunca debe
// tumbar la operación de negocio que lo originó; el que llama decide si
// lo registra en el log y sigue.
func WriteLog(opts LogOptions) error {
	// jsonb no acepta cadena vacía, usamos el literal "null"
	antesStr := "null"
	despuesStr := "null"

	if opts.Antes != nil {
		if b, err := json.Marshal(opts.Antes); err == nil {
			antesStr = string(b)
		}
	}
	if opts.Despues != nil {
		if b, err := json.Marshal(opts.Despues); err == nil {
			despuesStr = string(b)
		}
	}

	registro := models.Bitacora{
		UsuarioID:     opts.UsuarioID,
		UsuarioNombre: opts.UsuarioNombre,
		Entidad:       opts.Entidad,
		EntidadID:     opts.EntidadID,
		Accion:        opts.Accion,
		Descripcion:   opts.Descripcion,
		DatosAntes:    antesStr,
		DatosDespues:  despuesStr,
	}

	if err := database.DB.Create(&registro).Error; err != nil {
		return fmt.Errorf("no se pudo guardar la bitácora: %w", err)
	}

	return nil
}
