package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TipoVenta string

const (
	VentaContado TipoVenta = "contado"
	VentaCredito TipoVenta = "credito"
)

type EstadoPago string

const (
	PagoCompletado EstadoPago = "completado"
	PagoPendiente  EstadoPago = "pendiente"
	PagoParcial    EstadoPago = "parcial"
)

// Venta es inmutable una vez registrada, con la única excepción de
// estado_pago, que avanza pendiente -> parcial -> completado según se
// registran pagos. Los precios se copian del producto al momento de la
// venta; cambios de precio posteriores no afectan ventas pasadas.
type Venta struct {
	ID              uint            `gorm:"primaryKey"`
	UsuarioID       uint            `gorm:"index;not null"`
	Usuario         Usuario         `gorm:"foreignKey:UsuarioID"`
	ProductoID      uint            `gorm:"index;not null"`
	Producto        Producto        `gorm:"foreignKey:ProductoID"`
	ClienteNombre   string          `gorm:"size:200;not null"`
	ClienteTelefono string          `gorm:"size:50"`
	Cantidad        int             `gorm:"not null"`
	PrecioUnitario  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalVendido    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostoTotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Ganancia        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Diezmo          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TipoVenta       TipoVenta       `gorm:"size:50;not null;default:contado"`
	EstadoPago      EstadoPago      `gorm:"size:50;not null;default:completado"`
	FechaVenta      time.Time       `gorm:"type:date;index;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Pago es un registro append-only: no existe eliminación ni reembolso,
// por lo que el total pagado de una venta nunca disminuye.
type Pago struct {
	ID         uint            `gorm:"primaryKey"`
	UsuarioID  uint            `gorm:"index;not null"`
	Usuario    Usuario         `gorm:"foreignKey:UsuarioID"`
	VentaID    uint            `gorm:"index;not null"`
	Venta      Venta           `gorm:"foreignKey:VentaID"`
	Monto      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	FechaPago  time.Time       `gorm:"type:date;not null"`
	MetodoPago string          `gorm:"size:100"`
	Notas      string          `gorm:"size:500"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
