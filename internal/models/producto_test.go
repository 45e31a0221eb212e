package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminarEstado(t *testing.T) {
	casos := []struct {
		nombre      string
		cantidad    int
		stockMinimo int
		esperado    EstadoProducto
	}{
		{"sin unidades", 0, 5, ProductoAgotado},
		{"agotado aunque el minimo sea cero", 0, 0, ProductoAgotado},
		{"justo en el minimo", 5, 5, ProductoBajo},
		{"por debajo del minimo", 3, 5, ProductoBajo},
		{"una unidad con minimo cero", 1, 0, ProductoDisponible},
		{"por encima del minimo", 6, 5, ProductoDisponible},
		{"stock amplio", 100, 5, ProductoDisponible},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperado, DeterminarEstado(c.cantidad, c.stockMinimo))
		})
	}
}
