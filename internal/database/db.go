package database

import (
	"negocio-backend/internal/config"
	"negocio-backend/internal/logger"
	"negocio-backend/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var DB *gorm.DB

// Init abre la conexión y prepara el esquema. Si la base de datos no está
// disponible el proceso sigue corriendo en modo degradado: el healthcheck
// necesita que el servidor responda aunque no haya conexión.
func Init(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.L().Error("no se pudo conectar a la base de datos, el servidor arranca en modo degradado", zap.Error(err))
		return
	}
	DB = db

	if err := Migrate(DB); err != nil {
		logger.L().Error("error en AutoMigrate", zap.Error(err))
		return
	}

	if err := seed(DB); err != nil {
		logger.L().Error("error al crear los datos iniciales", zap.Error(err))
		return
	}

	logger.L().Info("base de datos lista, migración completada")
}

// Healthy indica si hay conexión viva con la base de datos.
func Healthy() bool {
	if DB == nil {
		return false
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}

// BloquearFila toma el bloqueo de fila (SELECT ... FOR UPDATE) en los
// motores que lo soportan. sqlite no acepta la cláusula y serializa los
// escritores por su cuenta.
func BloquearFila(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Usuario{},
		&models.Producto{},
		&models.Venta{},
		&models.Pago{},
		&models.DiezmoMensual{},
		&models.Gasto{},
		&models.Configuracion{},
		&models.Bitacora{},
	)
}

// seed crea el usuario admin inicial y su configuración de moneda si la
// base de datos está vacía.
func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Usuario{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Usuario{
		Username:     "admin",
		PasswordHash: string(hash),
		Nombre:       "Administrador",
		Rol:          "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.L().Warn("usuario admin creado con la contraseña por defecto, cámbiala cuanto antes",
		zap.Uint("usuario_id", admin.ID))

	configs := []models.Configuracion{
		{UsuarioID: admin.ID, Clave: models.ClaveMonedaSimbolo, Valor: "RD$"},
		{UsuarioID: admin.ID, Clave: models.ClaveMonedaCodigo, Valor: "DOP"},
	}
	return db.Create(&configs).Error
}
