package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EstadoDiezmo string

const (
	DiezmoPendiente EstadoDiezmo = "Pendiente"
	DiezmoEntregado EstadoDiezmo = "Entregado"
)

// DiezmoMensual acumula el 10% de cada venta del período. Una fila por
// (mes, anio, usuario): al registrar una venta se suma sobre la fila
// existente, nunca se sobreescribe. El estado de entrega es independiente
// del cobro de las ventas que lo originaron.
type DiezmoMensual struct {
	ID           uint            `gorm:"primaryKey"`
	Mes          int             `gorm:"not null;uniqueIndex:idx_diezmo_periodo"`
	Anio         int             `gorm:"not null;uniqueIndex:idx_diezmo_periodo"`
	UsuarioID    uint            `gorm:"not null;uniqueIndex:idx_diezmo_periodo"`
	Usuario      Usuario         `gorm:"foreignKey:UsuarioID"`
	TotalDiezmo  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Estado       EstadoDiezmo    `gorm:"size:50;not null;default:Pendiente"`
	FechaEntrega *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
