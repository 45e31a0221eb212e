package configuracion

import (
	"testing"

	"negocio-backend/internal/database"
	"negocio-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestGetDevuelveValorPorDefecto(t *testing.T) {
	db := abrirDB(t)
	assert.Equal(t, "RD$", Get(db, 1, models.ClaveMonedaSimbolo, MonedaSimboloDefault))
}

func TestSetCreaYReemplaza(t *testing.T) {
	db := abrirDB(t)
	u := models.Usuario{Username: "maria", PasswordHash: "x", Nombre: "María", Rol: "admin"}
	require.NoError(t, db.Create(&u).Error)

	require.NoError(t, Set(db, u.ID, models.ClaveMonedaSimbolo, "US$"))
	assert.Equal(t, "US$", Get(db, u.ID, models.ClaveMonedaSimbolo, MonedaSimboloDefault))

	// reemplaza sin duplicar la fila
	require.NoError(t, Set(db, u.ID, models.ClaveMonedaSimbolo, "€"))
	assert.Equal(t, "€", Get(db, u.ID, models.ClaveMonedaSimbolo, MonedaSimboloDefault))

	var filas int64
	db.Model(&models.Configuracion{}).
		Where("usuario_id = ? AND clave = ?", u.ID, models.ClaveMonedaSimbolo).
		Count(&filas)
	assert.EqualValues(t, 1, filas)

	// cada usuario tiene su propia configuración
	assert.Equal(t, "RD$", Get(db, u.ID+1, models.ClaveMonedaSimbolo, MonedaSimboloDefault))
}
