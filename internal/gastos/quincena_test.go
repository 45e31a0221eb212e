package gastos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRangoQuincena(t *testing.T) {
	dia := func(d int) time.Time {
		return time.Date(2025, time.February, d, 0, 0, 0, 0, time.UTC)
	}

	// primera quincena: del 1 al 15 inclusive
	desde, hasta := RangoQuincena(2025, 2, 1)
	assert.Equal(t, dia(1), desde)
	assert.Equal(t, dia(16), hasta)

	// segunda quincena: del 16 al fin de mes, incluso en febrero
	desde, hasta = RangoQuincena(2025, 2, 2)
	assert.Equal(t, dia(16), desde)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), hasta)

	// diciembre cruza al año siguiente
	_, hasta = RangoQuincena(2025, 12, 2)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), hasta)
}
