package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EstadoProducto string

const (
	ProductoDisponible EstadoProducto = "disponible"
	ProductoBajo       EstadoProducto = "bajo"
	ProductoAgotado    EstadoProducto = "agotado"
)

type Producto struct {
	ID            uint            `gorm:"primaryKey"`
	UsuarioID     uint            `gorm:"index;not null"`
	Usuario       Usuario         `gorm:"foreignKey:UsuarioID"`
	Nombre        string          `gorm:"size:200;not null"`
	Descripcion   string          `gorm:"size:500"`
	Cantidad      int             `gorm:"not null;default:0"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioVenta   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockMinimo   int             `gorm:"not null;default:5"`
	Estado        EstadoProducto  `gorm:"size:50;not null;default:disponible"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DeterminarEstado calcula el estado de un producto a partir de su cantidad
// y su stock mínimo. El estado nunca se asigna directamente: se recalcula
// cada vez que cambia la cantidad o el mínimo.
func DeterminarEstado(cantidad, stockMinimo int) EstadoProducto {
	switch {
	case cantidad == 0:
		return ProductoAgotado
	case cantidad <= stockMinimo:
		return ProductoBajo
	default:
		return ProductoDisponible
	}
}
