package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gasto es un registro independiente: no tiene relación con ventas ni
// inventario. La categoría es texto libre.
type Gasto struct {
	ID          uint            `gorm:"primaryKey"`
	UsuarioID   uint            `gorm:"index;not null"`
	Usuario     Usuario         `gorm:"foreignKey:UsuarioID"`
	Fecha       time.Time       `gorm:"type:date;index;not null"`
	Categoria   string          `gorm:"size:100;not null"`
	Descripcion string          `gorm:"size:500"`
	Monto       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
