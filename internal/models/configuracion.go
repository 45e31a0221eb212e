package models

import "time"

// Claves conocidas de configuración.
const (
	ClaveMonedaSimbolo = "moneda_simbolo"
	ClaveMonedaCodigo  = "moneda_codigo"
)

type Configuracion struct {
	ID        uint    `gorm:"primaryKey"`
	UsuarioID uint    `gorm:"not null;uniqueIndex:idx_config_clave"`
	Usuario   Usuario `gorm:"foreignKey:UsuarioID"`
	Clave     string  `gorm:"size:100;not null;uniqueIndex:idx_config_clave"`
	Valor     string  `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
